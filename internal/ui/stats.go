package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/brogergvhs/komikd/internal/util"
)

type Stats struct {
	TotalChapters int
	TotalImages   int
	FailedImages  int
	TotalBytes    int64
}

func (s *Stats) Add(images, failed int, bytes int64) {
	s.TotalChapters++
	s.TotalImages += images
	s.FailedImages += failed
	s.TotalBytes += bytes
}

func (s *Stats) Print(w io.Writer, elapsed time.Duration) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Download Summary:")
	fmt.Fprintf(w, "Chapters: %d\n", s.TotalChapters)
	fmt.Fprintf(w, "Images:   %d\n", s.TotalImages)
	if s.FailedImages > 0 {
		fmt.Fprintf(w, "Failed:   %d\n", s.FailedImages)
	}
	fmt.Fprintf(w, "Data:     %s\n", util.Human(s.TotalBytes))
	fmt.Fprintf(w, "Time:     %s\n", elapsed.Round(time.Second))
}
