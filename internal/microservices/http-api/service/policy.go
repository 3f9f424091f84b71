package service

// CommentPolicy is the per-content-type configuration controlling
// whether and how comments are accepted for that type.
type CommentPolicy struct {
	Commentable       bool
	AutoApprove       bool
	SpamProtection    bool
	CaptchaProtection bool
}

// PolicyRegistry maps model names to their comment policy. Models are
// registered explicitly at startup; a model that was never registered
// cannot receive comments.
type PolicyRegistry struct {
	policies map[string]CommentPolicy
}

func NewPolicyRegistry() *PolicyRegistry {
	return &PolicyRegistry{policies: make(map[string]CommentPolicy)}
}

// Register declares a commentable model and its policy
func (r *PolicyRegistry) Register(model string, policy CommentPolicy) {
	r.policies[model] = policy
}

// Get returns the policy for a model and whether the model is registered
func (r *PolicyRegistry) Get(model string) (CommentPolicy, bool) {
	policy, ok := r.policies[model]
	return policy, ok
}
