package main

import (
	"fmt"
	"io"

	"partref/internal/driver"
)

// printFileTimings печатает пофайловые отчёты таймера после вывода
// диагностик; файлы без отчёта (попадание в кэш) пропускаются.
func printFileTimings(out io.Writer, results []driver.FileResult) {
	for _, r := range results {
		if r.Result == nil || r.Result.Timing == nil {
			continue
		}
		fmt.Fprintf(out, "%s\n%s", r.Path, r.Result.Timing.Summary())
	}
}

func printGenerateTimings(out io.Writer, results []driver.GenerateFileResult) {
	for _, r := range results {
		if r.Result == nil || r.Result.Result == nil || r.Result.Timing == nil {
			continue
		}
		fmt.Fprintf(out, "%s\n%s", r.Path, r.Result.Timing.Summary())
	}
}
