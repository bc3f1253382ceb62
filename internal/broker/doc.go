// Package broker validates and dispatches the operation catalog against
// AWS EKS and Kubernetes backends.
//
// Every request produces a uniform envelope, either
// {"status":"success","data":...} or
// {"status":"error","error":"...","error_code":"CODE"}. Validation runs
// before any backend call, so a rejected request never touches AWS or a
// cluster. Control-plane operations go straight to the EKS API while
// data-plane operations provision cluster credentials and run through
// the access strategy chain in internal/kube.
package broker
