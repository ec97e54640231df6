package planner

// Callback receives planner events.
type Callback interface {
	OnSizing(result SizingResult)
	OnSimulation(result SimulationResult)
}

// Callbacks fans every event out to each callback in order.
type Callbacks []Callback

func (cs Callbacks) OnSizing(r SizingResult) {
	for _, c := range cs {
		c.OnSizing(r)
	}
}

func (cs Callbacks) OnSimulation(r SimulationResult) {
	for _, c := range cs {
		c.OnSimulation(r)
	}
}

type nopCallback struct{}

func (nopCallback) OnSizing(SizingResult)         {}
func (nopCallback) OnSimulation(SimulationResult) {}
