// Package services holds the ManagerX application services: the session and
// preferences stores and the task and note collection managers.
//
// Every service is an explicitly constructed object with its own lifecycle.
// Operations serialize on a per-service lock, keep their in-memory state in
// step with storage, and record failures in the service's error field
// (see Err and ClearError) instead of returning them to the presentation
// layer.
package services
