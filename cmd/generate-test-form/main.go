package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pstuifzand/tui-templategen/internal/model"
	"github.com/pstuifzand/tui-templategen/internal/storage"
)

func main() {
	numSchemas := flag.Int("schemas", 40, "Number of schemas to generate")
	numProperties := flag.Int("properties", 25, "Properties per schema")
	depth := flag.Int("depth", 2, "Maximum nesting depth of referenced schemas")
	output := flag.String("output", "large_form.json", "Output file path")
	flag.Parse()

	if *numSchemas < 1 || *numProperties < 1 {
		fmt.Fprintf(os.Stderr, "schemas and properties must be at least 1\n")
		os.Exit(1)
	}

	form := generateForm(*numSchemas, *numProperties, *depth)

	dir := filepath.Dir(*output)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create directory: %v\n", err)
			os.Exit(1)
		}
	}

	if err := storage.NewJSONStore(*output).Save(form); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write form: %v\n", err)
		os.Exit(1)
	}

	info, err := os.Stat(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to stat output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated form with %d schemas and %d checkboxes\n", len(form.Groups), countCheckboxes(form))
	fmt.Printf("Saved to: %s\n", *output)
	fmt.Printf("File size: %.2f MB\n", float64(info.Size())/(1024*1024))
}

func generateForm(schemas, properties, maxDepth int) *model.Form {
	form := model.NewForm()
	for i := 0; i < schemas; i++ {
		id := fmt.Sprintf("%s_%d", categories[i%len(categories)], i)
		g := model.NewGroup(id, fmt.Sprintf("%s %d", titles[i%len(titles)], i))
		for _, e := range generateProperties(id, properties, 0, maxDepth) {
			g.AddProperty(e)
		}
		form.AddGroup(g)
	}
	return form
}

// generateProperties makes every fifth property a reference with its own,
// smaller list of properties
func generateProperties(prefix string, count, depth, maxDepth int) []*model.Entry {
	entries := make([]*model.Entry, 0, count)
	for i := 0; i < count; i++ {
		name := fieldNames[i%len(fieldNames)]
		if i >= len(fieldNames) {
			name = fmt.Sprintf("%s_%d", name, i/len(fieldNames))
		}
		path := prefix + "." + name
		e := model.NewProperty(path, "")
		if i%5 == 4 && depth < maxDepth {
			for _, child := range generateProperties(path, count/3+1, depth+1, maxDepth) {
				e.AddChild(child)
			}
		}
		entries = append(entries, e)
	}
	return entries
}

func countCheckboxes(form *model.Form) int {
	count := 0
	form.Walk(func(e *model.Entry) bool {
		if e.IsCheckbox() {
			count++
		}
		return true
	})
	return count
}

var categories = []string{
	"donor_organism", "specimen_from_organism", "cell_suspension",
	"imaged_specimen", "organoid", "cell_line", "library_preparation",
	"sequencing_protocol", "collection_protocol", "project",
}

var titles = []string{
	"Donor organism", "Specimen", "Cell suspension", "Imaged specimen",
	"Organoid", "Cell line", "Library preparation", "Sequencing protocol",
	"Collection protocol", "Project",
}

var fieldNames = []string{
	"biomaterial_id", "biomaterial_name", "description", "ncbi_taxon_id",
	"genotype", "sex", "is_living", "development_stage", "diseases",
	"organism_age", "organism_age_unit", "human_specific", "height",
	"weight", "timecourse", "familial_relationships", "medical_history",
	"death", "organ", "organ_parts", "preservation_storage", "state_of_specimen",
	"purchased_specimen", "collection_time", "supplementary_files",
}
