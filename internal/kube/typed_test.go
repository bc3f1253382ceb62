package kube

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/giantswarm/mcp-eks/internal/credential"
)

func testCredentials() *credential.ClusterCredentials {
	return &credential.ClusterCredentials{
		ClusterName:          "prod",
		Region:               "us-east-1",
		Endpoint:             "https://ABC123.gr7.us-east-1.eks.amazonaws.com",
		CertificateAuthority: "Q0EgZGF0YQ==",
		Token:                "k8s-aws-v1.dG9rZW4",
		ExpiresAt:            time.Now().Add(14 * time.Minute),
	}
}

func newTypedForTest(objects ...runtime.Object) *TypedStrategy {
	strategy := NewTypedStrategy(nil)
	clientset := fake.NewSimpleClientset(objects...)
	strategy.newClientset = func(*credential.ClusterCredentials) (kubernetes.Interface, error) {
		return clientset, nil
	}
	return strategy
}

func TestTypedStrategy_ListNamespaces(t *testing.T) {
	strategy := newTypedForTest(testNamespace("kube-system"), testNamespace("default"))

	summaries, err := strategy.ListNamespaces(context.Background(), testCredentials())
	require.NoError(t, err)

	require.Len(t, summaries, 2)
	assert.Equal(t, "default", summaries[0].Name)
	assert.Equal(t, "kube-system", summaries[1].Name)
}

func TestTypedStrategy_ListPods(t *testing.T) {
	strategy := newTypedForTest(
		testPod("web-2", "default"),
		testPod("web-1", "default"),
		testPod("other", "kube-system"),
	)

	summaries, err := strategy.ListPods(context.Background(), testCredentials(), "default")
	require.NoError(t, err)

	require.Len(t, summaries, 2, "pods outside the namespace must not appear")
	assert.Equal(t, "web-1", summaries[0].Name)
	assert.Equal(t, "web-2", summaries[1].Name)
	assert.Equal(t, 2, summaries[0].Containers)
}

func TestTypedStrategy_DescribePod(t *testing.T) {
	strategy := newTypedForTest(testPod("web", "default"))

	detail, err := strategy.DescribePod(context.Background(), testCredentials(), "default", "web")
	require.NoError(t, err)
	assert.Equal(t, "web", detail.Name)
	assert.Equal(t, "uid-web", detail.UID)

	t.Run("missing pod", func(t *testing.T) {
		_, err := strategy.DescribePod(context.Background(), testCredentials(), "default", "ghost")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})
}

func TestTypedStrategy_ListDeployments(t *testing.T) {
	strategy := newTypedForTest(testDeployment("api", "default"))

	summaries, err := strategy.ListDeployments(context.Background(), testCredentials(), "default")
	require.NoError(t, err)

	require.Len(t, summaries, 1)
	assert.Equal(t, "api", summaries[0].Name)
	assert.Equal(t, int32(2), summaries[0].Ready)
}

func TestTypedStrategy_DescribeDeployment(t *testing.T) {
	strategy := newTypedForTest(testDeployment("api", "default"))

	detail, err := strategy.DescribeDeployment(context.Background(), testCredentials(), "default", "api")
	require.NoError(t, err)
	assert.Equal(t, "RollingUpdate", detail.Strategy)
	assert.Equal(t, map[string]string{"app": "api"}, detail.Selector)

	t.Run("missing deployment", func(t *testing.T) {
		_, err := strategy.DescribeDeployment(context.Background(), testCredentials(), "default", "ghost")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})
}

func TestTypedStrategy_ListServices(t *testing.T) {
	strategy := newTypedForTest(testService("api", "default"))

	summaries, err := strategy.ListServices(context.Background(), testCredentials(), "default")
	require.NoError(t, err)

	require.Len(t, summaries, 1)
	assert.Equal(t, "ClusterIP", summaries[0].Type)
}

func TestTypedStrategy_PodLogs(t *testing.T) {
	strategy := newTypedForTest(testPod("web", "default"))

	logs, err := strategy.PodLogs(context.Background(), testCredentials(), "default", "web", LogOptions{TailLines: 100})
	require.NoError(t, err)
	assert.Equal(t, "fake logs", logs)
}

func TestTypedStrategy_BadCertificateAuthority(t *testing.T) {
	strategy := NewTypedStrategy(nil)
	creds := testCredentials()
	creds.CertificateAuthority = "%%%not-base64%%%"

	_, err := strategy.ListNamespaces(context.Background(), creds)
	require.Error(t, err)
	assert.ErrorContains(t, err, "decoding certificate authority")
}
