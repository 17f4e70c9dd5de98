// Package talentmap fetches the talent-map snapshot from the platform API.
//
// The endpoint is GET {base}/talent-map. It returns the aggregated counts
// and the skill and language distributions; the body is normalized with
// [distribution.Parse] before it is cached, so cache entries are always
// well-formed snapshots.
//
//	client := talentmap.NewClient(backend, talentmap.Options{
//	    BaseURL: "http://localhost:8000/api",
//	    Token:   os.Getenv("TALENTMAP_TOKEN"),
//	})
//	snap, err := client.FetchSnapshot(ctx, false)
//
// [distribution.Parse]: github.com/matzehuels/talentmap/pkg/distribution.Parse
package talentmap
