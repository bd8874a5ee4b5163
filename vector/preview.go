package vector

import (
	"bufio"
	"fmt"
	"io"
)

// PreviewSize is the number of elements printed from each end of a long
// vector, vectors shorter than 2*PreviewSize are printed entirely.
const PreviewSize = 10

// Print writes the title and a preview of v to w: all elements if the vector
// is shorter than 2*PreviewSize, otherwise the first and last PreviewSize
// elements separated by an ellipsis line.
func Print(w io.Writer, title string, v Vector) error {
	n := len(v)
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s\n\t", title)

	head := n
	if n >= 2*PreviewSize {
		head = PreviewSize
	}
	for _, x := range v[:head] {
		fmt.Fprintf(bw, "%f ", x)
	}
	bw.WriteString("\t")

	if n >= 2*PreviewSize {
		bw.WriteString("\n\t...\n\t")
		for _, x := range v[n-PreviewSize:] {
			fmt.Fprintf(bw, "%f ", x)
		}
	}
	bw.WriteString("\n")

	return bw.Flush()
}
