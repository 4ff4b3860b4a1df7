package ansible

import "errors"

// ErrEngineNotFound indicates the ansible-playbook binary is missing or not
// executable, so no run was started.
var ErrEngineNotFound = errors.New("automation engine not found")
