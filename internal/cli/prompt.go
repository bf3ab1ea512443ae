package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/sheetmv/sheetmv/internal/rename"
)

// confirmRun asks for explicit confirmation before a live rename pass.
// Anything other than y/yes declines.
func confirmRun(summary rename.Summary, rp *runParams) (bool, error) {
	fmt.Println()
	fmt.Printf("%s This will rename %d file(s) in: %s\n",
		color.YellowString("⚠"), summary.Renames, rp.TargetFolder)
	if summary.Collisions > 0 {
		fmt.Printf("  %d collision(s) will be logged as errors and left untouched.\n", summary.Collisions)
	}
	if summary.Missing() > 0 {
		fmt.Printf("  %d row(s) have no matching file and will be skipped.\n", summary.Missing())
	}
	if rp.Backup {
		fmt.Println("A backup copy of every matched file will be created first.")
	} else {
		fmt.Println("This cannot be undone: backup is disabled for this run.")
	}
	fmt.Print("Proceed? [y/N]: ")

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}

	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes", nil
}
