package store

import "sort"

// createFollowRequest stores a new pending request. Caller must hold the
// write lock; Follow has already run the self/exists/blocked checks.
func (s *Store) createFollowRequest(requester, target UserID, message string) (FollowRequest, error) {
	pending := 0
	for _, req := range s.requests {
		if req.Status != RequestPending {
			continue
		}
		if req.Requester == requester && req.Target == target {
			return FollowRequest{}, ErrDuplicateRequest
		}
		if req.Requester == requester {
			pending++
		}
	}
	if pending >= MaxPendingRequests {
		return FollowRequest{}, ErrPendingLimit
	}

	id := RequestID(s.nextRequestID)
	s.nextRequestID++

	request := &FollowRequest{
		ID:        id,
		Requester: requester,
		Target:    target,
		CreatedAt: s.now(),
		Status:    RequestPending,
		Message:   message,
	}
	s.requests[id] = request
	return *request, nil
}

// ApproveFollowRequest turns a pending request into a follow edge and
// marks it Approved. Both effects happen under one lock acquisition, so
// "approved but no edge" is never observable. Only the request's target
// may approve.
//
// The edge may already exist when the target went public after the
// request was filed and the requester followed directly; approving then
// only flips the status, so the counters stay equal to the set sizes.
func (s *Store) ApproveFollowRequest(caller UserID, requestID RequestID) (FollowRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.requests[requestID]
	if !ok {
		return FollowRequest{}, ErrRequestNotFound
	}
	if request.Target != caller {
		return FollowRequest{}, ErrNotRequestTarget
	}
	if request.Status != RequestPending {
		return FollowRequest{}, ErrRequestNotPending
	}

	if !s.hasEdge(request.Requester, request.Target) {
		s.executeFollow(request.Requester, request.Target)
	}
	request.Status = RequestApproved
	return *request, nil
}

// RejectFollowRequest marks a pending request Rejected. No edge is
// created. Only the request's target may reject.
func (s *Store) RejectFollowRequest(caller UserID, requestID RequestID) (FollowRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.requests[requestID]
	if !ok {
		return FollowRequest{}, ErrRequestNotFound
	}
	if request.Target != caller {
		return FollowRequest{}, ErrNotRequestTarget
	}
	if request.Status != RequestPending {
		return FollowRequest{}, ErrRequestNotPending
	}

	request.Status = RequestRejected
	return *request, nil
}

// CancelFollowRequest lets the requester withdraw a pending request.
func (s *Store) CancelFollowRequest(caller UserID, requestID RequestID) (FollowRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.requests[requestID]
	if !ok {
		return FollowRequest{}, ErrRequestNotFound
	}
	if request.Requester != caller {
		return FollowRequest{}, ErrNotRequestTarget
	}
	if request.Status != RequestPending {
		return FollowRequest{}, ErrRequestNotPending
	}

	request.Status = RequestCancelled
	return *request, nil
}

// PendingFollowRequests returns all pending requests targeting the
// caller, oldest first.
func (s *Store) PendingFollowRequests(caller UserID) []FollowRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []FollowRequest
	for _, req := range s.requests {
		if req.Target == caller && req.Status == RequestPending {
			pending = append(pending, *req)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })
	return pending
}
