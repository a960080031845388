package drawer

// Drawer is an interface that defines the methods for drawing a model graph.
type Drawer interface {
	// AddStage adds a model stage to the graph.
	AddStage(name string, paramCount int) error
	// AddFlow adds a data flow between a parent and a child stage, labelled
	// with the variables that travel along it.
	AddFlow(parentName, childName string, variables []string) error
	// Draw creates a file with the model graph.
	Draw() error
}
