package random

func SetIntN(f func(n int) int) (resetFunc func()) {
	tmp := intN
	intN = f
	return func() {
		intN = tmp
	}
}
