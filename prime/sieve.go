package prime

// SegmentedSieve returns the ascending primes in [start, end] using a
// sieve of Eratosthenes over segments of at most sieveSpan numbers, so the
// working set stays bounded regardless of how wide the range is.
//
// Base primes up to sqrt(end) are computed once with a simple sieve. Within
// each segment every base prime strikes its multiples from max(p*p, first
// multiple >= segment low). Survivors at or below the base-prime limit are
// re-validated with IsPrime to keep the low boundary exact. yield may be nil;
// it is invoked once per completed segment.
func SegmentedSieve(start, end uint64, yield YieldFunc) []uint64 {
	if start < 2 {
		start = 2
	}
	if start > end {
		return nil
	}

	limit := isqrt(end) + 1
	base := simpleSieve(limit)

	primes := make([]uint64, 0, (end-start)/10+1)
	for low := start; ; {
		high := low + sieveSpan - 1
		if high > end || high < low {
			high = end
		}

		composite := make([]bool, high-low+1)
		for _, p := range base {
			first := p * p
			if first < low {
				first = (low + p - 1) / p * p
			}
			if first > high {
				continue
			}
			for j := first; j <= high; j += p {
				composite[j-low] = true
			}
		}

		for i, c := range composite {
			if c {
				continue
			}
			n := low + uint64(i)
			if n <= limit && !IsPrime(n) {
				continue
			}
			primes = append(primes, n)
		}

		if yield != nil {
			yield()
		}
		if high == end {
			break
		}
		low = high + 1
	}
	return primes
}

// simpleSieve returns all primes <= limit via a plain sieve of Eratosthenes.
func simpleSieve(limit uint64) []uint64 {
	if limit < 2 {
		return nil
	}
	composite := make([]bool, limit+1)
	primes := make([]uint64, 0, limit/10+1)
	for i := uint64(2); i <= limit; i++ {
		if composite[i] {
			continue
		}
		primes = append(primes, i)
		for j := i * i; j <= limit && j >= i; j += i {
			composite[j] = true
		}
	}
	return primes
}

// isqrt returns floor(sqrt(n)) without floating-point rounding error,
// comparing via division so nothing overflows near the uint64 ceiling.
func isqrt(n uint64) uint64 {
	if n < 2 {
		return n
	}
	r := uint64(1)
	for r < 1<<32 && r <= n/r {
		r <<= 1
	}
	r >>= 1
	for step := r >> 1; step > 0; step >>= 1 {
		if c := r + step; c <= n/c {
			r = c
		}
	}
	return r
}
