package utils

const (
	NODETOL = 1.e-12 // Default absolute tolerance for coincident nodes
)

type EvalOp uint8

const (
	Equal EvalOp = iota
	NotEqual
	Less
	Greater
	LessOrEqual
	GreaterOrEqual
)
