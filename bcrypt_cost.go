//go:build !race

package lockout

func passwordHashCost() int {
	return 10
}
