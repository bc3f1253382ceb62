package kube

import (
	"sort"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// unavailableValue is reported when a pod has not been scheduled or
// assigned an IP yet.
const unavailableValue = "N/A"

// NamespaceSummary is the condensed listing form of a namespace.
type NamespaceSummary struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Created string `json:"created"`
}

// PodSummary is the condensed listing form of a pod. Containers is the
// container count, not the container list.
type PodSummary struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Node       string `json:"node"`
	IP         string `json:"ip"`
	Containers int    `json:"containers"`
}

// PodContainer describes one container inside a PodDetail.
type PodContainer struct {
	Name      string                      `json:"name"`
	Image     string                      `json:"image"`
	Ports     []corev1.ContainerPort      `json:"ports"`
	Resources corev1.ResourceRequirements `json:"resources"`
}

// PodDetail is the full description of a single pod.
type PodDetail struct {
	Name              string            `json:"name"`
	Namespace         string            `json:"namespace"`
	UID               string            `json:"uid"`
	CreationTimestamp string            `json:"creationTimestamp"`
	Labels            map[string]string `json:"labels"`
	NodeName          string            `json:"nodeName"`
	HostIP            string            `json:"hostIP"`
	PodIP             string            `json:"podIP"`
	Phase             string            `json:"phase"`
	Containers        []PodContainer    `json:"containers"`
}

// DeploymentSummary is the condensed listing form of a deployment.
// Replicas mirrors spec.replicas and is null when the field is unset.
type DeploymentSummary struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Replicas  *int32 `json:"replicas"`
	Available int32  `json:"available"`
	Ready     int32  `json:"ready"`
	Updated   int32  `json:"updated"`
	Created   string `json:"created"`
}

// DeploymentContainer identifies one container image in a deployment's
// pod template.
type DeploymentContainer struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// DeploymentDetail is the full description of a single deployment.
type DeploymentDetail struct {
	DeploymentSummary

	Labels     map[string]string     `json:"labels"`
	Selector   map[string]string     `json:"selector"`
	Strategy   string                `json:"strategy"`
	Containers []DeploymentContainer `json:"containers"`
}

// ServiceSummary is the condensed listing form of a service. ExternalIP
// is the first external IP or load balancer hostname, or "None".
type ServiceSummary struct {
	Name       string               `json:"name"`
	Namespace  string               `json:"namespace"`
	Type       string               `json:"type"`
	ClusterIP  string               `json:"clusterIP"`
	ExternalIP string               `json:"externalIP"`
	Ports      []corev1.ServicePort `json:"ports"`
	Created    string               `json:"created"`
}

func formatTime(t metav1.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func newNamespaceSummary(ns *corev1.Namespace) NamespaceSummary {
	return NamespaceSummary{
		Name:    ns.Name,
		Status:  string(ns.Status.Phase),
		Created: formatTime(ns.CreationTimestamp),
	}
}

func namespaceSummaries(items []corev1.Namespace) []NamespaceSummary {
	summaries := make([]NamespaceSummary, 0, len(items))
	for i := range items {
		summaries = append(summaries, newNamespaceSummary(&items[i]))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries
}

func newPodSummary(pod *corev1.Pod) PodSummary {
	node := pod.Spec.NodeName
	if node == "" {
		node = unavailableValue
	}
	ip := pod.Status.PodIP
	if ip == "" {
		ip = unavailableValue
	}
	return PodSummary{
		Name:       pod.Name,
		Status:     string(pod.Status.Phase),
		Node:       node,
		IP:         ip,
		Containers: len(pod.Spec.Containers),
	}
}

func podSummaries(items []corev1.Pod) []PodSummary {
	summaries := make([]PodSummary, 0, len(items))
	for i := range items {
		summaries = append(summaries, newPodSummary(&items[i]))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries
}

func newPodDetail(pod *corev1.Pod) *PodDetail {
	containers := make([]PodContainer, 0, len(pod.Spec.Containers))
	for _, c := range pod.Spec.Containers {
		ports := c.Ports
		if ports == nil {
			ports = []corev1.ContainerPort{}
		}
		containers = append(containers, PodContainer{
			Name:      c.Name,
			Image:     c.Image,
			Ports:     ports,
			Resources: c.Resources,
		})
	}

	labels := pod.Labels
	if labels == nil {
		labels = map[string]string{}
	}

	return &PodDetail{
		Name:              pod.Name,
		Namespace:         pod.Namespace,
		UID:               string(pod.UID),
		CreationTimestamp: formatTime(pod.CreationTimestamp),
		Labels:            labels,
		NodeName:          pod.Spec.NodeName,
		HostIP:            pod.Status.HostIP,
		PodIP:             pod.Status.PodIP,
		Phase:             string(pod.Status.Phase),
		Containers:        containers,
	}
}

func newDeploymentSummary(deployment *appsv1.Deployment) DeploymentSummary {
	return DeploymentSummary{
		Name:      deployment.Name,
		Namespace: deployment.Namespace,
		Replicas:  deployment.Spec.Replicas,
		Available: deployment.Status.AvailableReplicas,
		Ready:     deployment.Status.ReadyReplicas,
		Updated:   deployment.Status.UpdatedReplicas,
		Created:   formatTime(deployment.CreationTimestamp),
	}
}

func deploymentSummaries(items []appsv1.Deployment) []DeploymentSummary {
	summaries := make([]DeploymentSummary, 0, len(items))
	for i := range items {
		summaries = append(summaries, newDeploymentSummary(&items[i]))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries
}

func newDeploymentDetail(deployment *appsv1.Deployment) *DeploymentDetail {
	labels := deployment.Labels
	if labels == nil {
		labels = map[string]string{}
	}

	selector := map[string]string{}
	if deployment.Spec.Selector != nil && deployment.Spec.Selector.MatchLabels != nil {
		selector = deployment.Spec.Selector.MatchLabels
	}

	template := deployment.Spec.Template.Spec
	containers := make([]DeploymentContainer, 0, len(template.Containers))
	for _, c := range template.Containers {
		containers = append(containers, DeploymentContainer{
			Name:  c.Name,
			Image: c.Image,
		})
	}

	return &DeploymentDetail{
		DeploymentSummary: newDeploymentSummary(deployment),
		Labels:            labels,
		Selector:          selector,
		Strategy:          string(deployment.Spec.Strategy.Type),
		Containers:        containers,
	}
}

func newServiceSummary(svc *corev1.Service) ServiceSummary {
	externalIP := "None"
	switch {
	case len(svc.Spec.ExternalIPs) > 0:
		externalIP = svc.Spec.ExternalIPs[0]
	case len(svc.Status.LoadBalancer.Ingress) > 0:
		ingress := svc.Status.LoadBalancer.Ingress[0]
		if ingress.IP != "" {
			externalIP = ingress.IP
		} else if ingress.Hostname != "" {
			externalIP = ingress.Hostname
		}
	}

	ports := svc.Spec.Ports
	if ports == nil {
		ports = []corev1.ServicePort{}
	}

	return ServiceSummary{
		Name:       svc.Name,
		Namespace:  svc.Namespace,
		Type:       string(svc.Spec.Type),
		ClusterIP:  svc.Spec.ClusterIP,
		ExternalIP: externalIP,
		Ports:      ports,
		Created:    formatTime(svc.CreationTimestamp),
	}
}

func serviceSummaries(items []corev1.Service) []ServiceSummary {
	summaries := make([]ServiceSummary, 0, len(items))
	for i := range items {
		summaries = append(summaries, newServiceSummary(&items[i]))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries
}
