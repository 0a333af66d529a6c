package onboarding

// Stage is one of the five linear onboarding phases. Order is fixed: no
// skipping, and going back never reverts remote writes.
type Stage string

const (
	StageStore     Stage = "store"
	StageProducts  Stage = "products"
	StageLogistics Stage = "logistics"
	StageApproval  Stage = "approval"
	StageGoLive    Stage = "go_live"
)

var stageOrder = []Stage{StageStore, StageProducts, StageLogistics, StageApproval, StageGoLive}

func (s Stage) index() int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the following stage; ok is false at the terminal stage.
func (s Stage) Next() (Stage, bool) {
	i := s.index()
	if i < 0 || i+1 >= len(stageOrder) {
		return s, false
	}
	return stageOrder[i+1], true
}

// Prev returns the preceding stage; ok is false at the first stage.
func (s Stage) Prev() (Stage, bool) {
	i := s.index()
	if i <= 0 {
		return s, false
	}
	return stageOrder[i-1], true
}

// ProductStep is the nested sub-stage, valid only while Stage == StageProducts.
type ProductStep string

const (
	StepGeneral    ProductStep = "general"
	StepAdvanced   ProductStep = "advanced"
	StepAttributes ProductStep = "attributes"
	StepPricing    ProductStep = "pricing"
)

var productStepOrder = []ProductStep{StepGeneral, StepAdvanced, StepAttributes, StepPricing}

func (p ProductStep) index() int {
	for i, st := range productStepOrder {
		if st == p {
			return i
		}
	}
	return -1
}

// Next returns the following sub-step; ok is false after pricing.
func (p ProductStep) Next() (ProductStep, bool) {
	i := p.index()
	if i < 0 || i+1 >= len(productStepOrder) {
		return p, false
	}
	return productStepOrder[i+1], true
}

// Prev returns the preceding sub-step; ok is false at general.
func (p ProductStep) Prev() (ProductStep, bool) {
	i := p.index()
	if i <= 0 {
		return p, false
	}
	return productStepOrder[i-1], true
}

// Explicit action identifiers. Only the designated action of the current
// stage advances the wizard; anything else is a no-op. Controls pass these
// ids instead of relying on visible button text.
const (
	ActionSaveStore      = "store.save_continue"
	ActionProductsNext   = "products.continue"
	ActionSaveProducts   = "products.save_continue"
	ActionSaveLogistics  = "logistics.save_continue"
	ActionSubmitApproval = "approval.submit"
	ActionGoLive         = "go_live.finish"
)

// primaryAction returns the action id that advances from the given position.
func primaryAction(stage Stage, step ProductStep) string {
	switch stage {
	case StageStore:
		return ActionSaveStore
	case StageProducts:
		if step == StepPricing {
			return ActionSaveProducts
		}
		return ActionProductsNext
	case StageLogistics:
		return ActionSaveLogistics
	case StageApproval:
		return ActionSubmitApproval
	case StageGoLive:
		return ActionGoLive
	}
	return ""
}
