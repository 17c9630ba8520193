package domain

import (
	"fmt"
	"testing"
	"time"
)

func BenchmarkQuery(b *testing.B) {
	all := make([]Question, 0, 5000)
	for i := range 5000 {
		all = append(all, question(fmt.Sprintf("q%d", i), time.Duration(i)*time.Minute, i%17, i%3, "go", "bench"))
	}

	params := QueryParams{Search: "go", SortBy: SortVotes, Page: 3, PageSize: 20}

	b.ReportAllocs()

	for b.Loop() {
		Query(all, params)
	}
}
