package session

import (
	"fmt"
	"math/rand"
)

var seedTopics = []string{
	"Distributed systems",
	"Garden planning",
	"Reading list",
	"Compiler internals",
	"Travel research",
	"Recipe collection",
	"Interview prep",
	"Music theory",
	"Home renovation",
	"Photography course",
	"Language learning",
	"Paper drafts",
}

var seedKinds = []string{
	"notes",
	"scratchpad",
	"archive",
	"workspace",
	"journal",
}

// Seed inserts n generated sessions with plausible names and stats.
// The same seed value produces the same data, which keeps demo
// databases reproducible.
func Seed(st *Store, n int, seed int64) ([]Entity, error) {
	rng := rand.New(rand.NewSource(seed))
	entities := make([]Entity, 0, n)

	for i := 0; i < n; i++ {
		topic := seedTopics[rng.Intn(len(seedTopics))]
		kind := seedKinds[rng.Intn(len(seedKinds))]

		nodes := 3 + rng.Intn(60)
		docs := rng.Intn(nodes/2 + 1)
		texts := rng.Intn(nodes + 1)
		images := rng.Intn(nodes/3 + 1)
		sites := rng.Intn(nodes/4 + 1)

		e := Entity{
			DisplayName: fmt.Sprintf("%s %s", topic, kind),
			NodeCount:   nodes,
			EdgeCount:   nodes - 1 + rng.Intn(nodes),
			Stats: Stats{
				Documents:  docs,
				TextNodes:  texts,
				Images:     images,
				Websites:   sites,
				TotalWords: (docs + texts) * (80 + rng.Intn(400)),
			},
		}

		added, err := st.Add(e)
		if err != nil {
			return entities, err
		}
		entities = append(entities, added)
	}
	return entities, nil
}
