package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kasuganosora/livetable/pkg/column"
	"github.com/kasuganosora/livetable/pkg/config"
	"github.com/kasuganosora/livetable/pkg/export"
	"github.com/kasuganosora/livetable/pkg/table"
	"github.com/kasuganosora/livetable/pkg/view"
)

func main() {
	cfg := config.LoadOrDefault()
	cfg.ApplyIncrementalConfig()
	logger := cfg.Logger()

	schema := table.NewSchema(
		table.ColumnDef{Name: "id", Type: column.TypeInt64, Nullable: false},
		table.ColumnDef{Name: "name", Type: column.TypeString, Nullable: false},
		table.ColumnDef{Name: "score", Type: column.TypeInt64, Nullable: true},
	)

	people := table.NewWithOptions("people", schema, cfg.TableOptions())

	seed := []struct {
		id    int64
		name  string
		score int64
	}{
		{1, "Alice", 95},
		{2, "Bob", 80},
		{3, "Carol", 88},
	}
	for _, p := range seed {
		if err := people.AppendRow(map[string]column.Value{
			"id":    column.Int64(p.id),
			"name":  column.String(p.name),
			"score": column.Int64(p.score),
		}); err != nil {
			log.Fatal("seeding people: ", err)
		}
	}

	highScorers := view.NewFilterView("high_scorers", people, func(row map[string]column.Value) bool {
		score, ok := row["score"].AsInt64()
		return ok && score >= 85
	})

	byScore, err := view.NewSortedView("by_score", people, []view.SortKey{
		view.DescendingKey("score"),
	})
	if err != nil {
		log.Fatal("building by_score view: ", err)
	}

	logger.Infof("livetable demo engine")
	logger.Infof("people: %d rows, %d scoring >= 85", people.Len(), highScorers.Len())

	fmt.Println("ranked by score:")
	for i := 0; i < byScore.Len(); i++ {
		row, err := byScore.GetRow(i)
		if err != nil {
			log.Fatal("reading ranked row: ", err)
		}
		name, _ := row["name"].AsString()
		score, _ := row["score"].AsInt64()
		fmt.Printf("  %d. %s (%d)\n", i+1, name, score)
	}

	if len(os.Args) > 1 && os.Args[1] == "--export" {
		path := "people.xlsx"
		if err := export.WriteTableXLSX(path, "People", people); err != nil {
			log.Fatal("exporting xlsx: ", err)
		}
		logger.Infof("wrote %s", path)
	}
}
