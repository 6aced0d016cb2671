package metrics

import "time"

type Recorder interface {
	ObserveVerdict(outcome string)
	ObserveConversion(outcome string, elapsed time.Duration)
	ObserveExtraction(outcome string)
}
