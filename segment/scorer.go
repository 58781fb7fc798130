package segment

// Score rates a unit of n morphemes: unrecognized units are worth nothing and
// recognized units grow quadratically with their length, so one long
// recognized unit beats several short ones.
func Score(recognized bool, n int) int {
	if !recognized {
		return 0
	}
	return n * n
}
