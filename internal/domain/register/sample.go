package register

// SampleFeed returns the built-in registration feed used by the offline
// report tool. The repeated "Alice" is intentional: her second entry must
// overwrite the first in the latest-score view while both occurrences stay
// in the history.
func SampleFeed() []Entry {
	return []Entry{
		{Name: "Alice", Score: 95},
		{Name: "Bob", Score: 80},
		{Name: "Alice", Score: 97},
		{Name: "Charlie", Score: 100},
		{Name: "Diana", Score: 75},
	}
}
