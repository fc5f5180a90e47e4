package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/jminnion/trendsnap/pkg/dbf"
	"github.com/jminnion/trendsnap/pkg/fileutil"
	"github.com/jminnion/trendsnap/pkg/idx"
)

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	encoding := fs.String("encoding", "", "code page for text fields (default cp850)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("info takes exactly one .DBF file")
	}

	enc, err := resolveEncoding(*encoding)
	if err != nil {
		return err
	}

	return writeInfo(os.Stdout, fs.Arg(0), enc)
}

// writeInfo prints the header, field table and pen names of one snapshot.
func writeInfo(w io.Writer, path, encoding string) error {
	opts := dbf.DefaultOptions()
	opts.Encoding = encoding

	fl, err := dbf.Open(path, opts)
	if err != nil {
		return err
	}
	defer fl.Close()

	h := fl.Header()
	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  version:      %s\n", h.VersionName())
	fmt.Fprintf(w, "  last update:  %s\n", h.LastModified().Format("2006-01-02"))
	fmt.Fprintf(w, "  records:      %d\n", h.RecordCount)
	fmt.Fprintf(w, "  record size:  %d bytes\n", h.RecordLen)
	fmt.Fprintf(w, "  fields:       %d\n", len(fl.Schema().Fields))

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tTYPE\tKIND\tLEN\tDEC")
	for _, fd := range fl.Schema().Fields {
		fmt.Fprintf(tw, "  %s\t%c\t%s\t%d\t%d\n", fd.Name, fd.Type, fd.Kind(), fd.Length, fd.DecimalCount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if idxPath := fileutil.SiblingIndexPath(path); idxPath != "" {
		pens, err := idx.ParseFile(idxPath, encoding)
		if err != nil {
			fmt.Fprintf(w, "  index:        %s (unreadable: %v)\n", idxPath, err)
		} else {
			fmt.Fprintf(w, "  index:        %s\n", idxPath)
			for _, pen := range pens.Pens() {
				fmt.Fprintf(w, "    %s -> %s\n", pen.Key, pen.Name)
			}
		}
	}

	for _, warn := range fl.Warnings() {
		fmt.Fprintf(w, "  warning:      %s\n", warn.String())
	}

	return nil
}
