package prime

// YieldFunc is called between candidate batches so that CPU-bound scans can
// hand control back to a cooperative scheduler. A nil YieldFunc is a no-op,
// which is the normal case in a thread-per-worker pool.
type YieldFunc func()

// yieldInterval is the number of candidates examined between yield calls.
const yieldInterval = 1000

// sieveSpan is the range width above which Compute switches from per-candidate
// trial division to the segmented sieve. It doubles as the sieve segment size.
const sieveSpan = 100000

// Compute returns the ascending primes in [start, end], choosing trial
// division for chunk-sized ranges and the segmented sieve for wider spans.
// Returns nil when start > end.
func Compute(start, end uint64, yield YieldFunc) []uint64 {
	if start > end {
		return nil
	}
	if end-start <= sieveSpan {
		return Range(start, end, yield)
	}
	return SegmentedSieve(start, end, yield)
}

// Range returns the ascending primes in [start, end] by filtering every
// candidate through IsPrime. yield may be nil.
func Range(start, end uint64, yield YieldFunc) []uint64 {
	if start > end {
		return nil
	}
	// Roughly 10% of a chunk is prime at small magnitudes.
	primes := make([]uint64, 0, (end-start)/10+1)
	scanned := 0
	for n := start; ; n++ {
		if IsPrime(n) {
			primes = append(primes, n)
		}
		scanned++
		if yield != nil && scanned%yieldInterval == 0 {
			yield()
		}
		if n == end {
			break
		}
	}
	return primes
}
