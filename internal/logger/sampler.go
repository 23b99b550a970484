package logger

import (
	"strconv"
	"strings"
	"sync"
)

// ratioSampler passes the first numerator events out of every window of
// denominator events. A zero ratio disables sampling and passes everything.
type ratioSampler struct {
	mu          sync.Mutex
	numerator   int
	denominator int
	counter     int
}

func newRatioSampler(numerator, denominator int) *ratioSampler {
	s := &ratioSampler{}
	s.Set(numerator, denominator)
	return s
}

// Set replaces the ratio and restarts the window.
func (s *ratioSampler) Set(numerator, denominator int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if numerator <= 0 || denominator <= 0 {
		numerator, denominator = 0, 0
	} else if numerator > denominator {
		numerator = denominator
	}
	s.numerator = numerator
	s.denominator = denominator
	s.counter = 0
}

// Allow reports whether the current event falls inside the sampled share
// of the window.
func (s *ratioSampler) Allow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.numerator <= 0 || s.denominator <= 0 {
		return true
	}
	pos := s.counter
	s.counter = (s.counter + 1) % s.denominator
	return pos < s.numerator
}

// parseRatioSpec reads "n/d" or a bare "d" (meaning 1/d). Unparsable or
// non-positive specs come back as 0,0 which disables sampling.
func parseRatioSpec(spec string) (int, int) {
	spec = strings.TrimSpace(spec)
	if left, right, found := strings.Cut(spec, "/"); found {
		num, errN := strconv.Atoi(strings.TrimSpace(left))
		den, errD := strconv.Atoi(strings.TrimSpace(right))
		if errN != nil || errD != nil {
			return 0, 0
		}
		return num, den
	}
	n, err := strconv.Atoi(spec)
	if err != nil || n <= 0 {
		return 0, 0
	}
	return 1, n
}
