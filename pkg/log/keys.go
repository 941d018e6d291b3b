package log

// Field keys.
const (
	LoggerNameKey = "logger"
	ModelNameKey  = "model_name"
	ComponentKey  = "component"
	OperationKey  = "operation"
	PhaseKey      = "phase"
	SamplesKey    = "n_samples"
	FeaturesKey   = "n_features"
	DurationMsKey = "duration_ms"
	StepKey       = "step"
	ColumnKey     = "column"
	PlacementKey  = "placement"
	ErrorKey      = "error"
)

// Operation values.
const (
	OperationFit              = "fit"
	OperationTransform        = "transform"
	OperationInverseTransform = "inverse_transform"
	OperationTrain            = "train"
	OperationPredict          = "predict"
	OperationEvaluate         = "evaluate"
)

// Phase values.
const (
	PhasePreprocessing = "preprocessing"
	PhaseTraining      = "training"
	PhaseInference     = "inference"
)
