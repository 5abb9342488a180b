package bfvm

type Interrupt struct {
	Suspend bool
	Yield   bool
}

var (
	// InterruptSuspend is yielded when the step budget of a Run call is used up.
	InterruptSuspend = &Interrupt{
		Suspend: true,
	}
	// InterruptYield is yielded every Config.YieldInterval steps.
	InterruptYield = &Interrupt{
		Yield: true,
	}
)
