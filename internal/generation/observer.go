package generation

import "time"

// Observer receives pipeline events. It is used to feed metrics and must be
// safe for concurrent use.
type Observer interface {
	// ObserveAttempt is called after every provider attempt. err is nil on
	// success.
	ObserveAttempt(provider string, attempt int, duration time.Duration, err *ProviderError)

	// ObserveBackoff is called before waiting between attempts.
	ObserveBackoff(provider string, delay time.Duration)

	// ObserveGeneration is called once per Generate call. err is nil on
	// success.
	ObserveGeneration(provider string, err *ProviderError)
}

type noopObserver struct{}

func (noopObserver) ObserveAttempt(string, int, time.Duration, *ProviderError) {}
func (noopObserver) ObserveBackoff(string, time.Duration)                      {}
func (noopObserver) ObserveGeneration(string, *ProviderError)                  {}
