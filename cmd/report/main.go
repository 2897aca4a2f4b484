// Command report ingests the built-in registration feed and prints the
// three roster views to standard output. It takes no arguments and reads
// no environment; identical runs produce identical output.
package main

import (
	"context"
	"os"

	"github.com/okian/roster/internal/domain/register"
	"github.com/okian/roster/internal/domain/report"
)

func main() {
	res := register.Ingest(context.Background(), register.SampleFeed())
	os.Stdout.WriteString(report.Render(res))
}
