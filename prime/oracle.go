package prime

// IsPrime reports whether n is prime. It is a total function over uint64:
// values below 2 are not prime, and the divisor loop compares via division
// so the square bound never overflows.
//
// Trial division checks 2 and 3 first, then only candidates of the form
// 6k±1 up to floor(sqrt(n)).
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n == 2 || n == 3 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	for i := uint64(5); i <= n/i; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}
