package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/docusage/internal/filex"
)

var knownContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// contentTypeFor guesses a MIME type from the file extension.
func contentTypeFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ct, ok := knownContentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func (a *App) Upload(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	f, err := a.client.UploadFile(ctx, filepath.Base(path), contentTypeFor(path), content)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "uploaded %s (%d bytes) id=%s\n", f.Filename, f.Size, f.ID)
	return nil
}

func (a *App) Files(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	files, err := a.client.ListFiles(ctx)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		fmt.Fprintln(a.out, "no files")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSIZE\tUPLOADED")
	for _, f := range files {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", f.ID, f.Filename, f.ContentType, f.Size, f.CreatedAt.Local().Format(time.DateTime))
	}
	return w.Flush()
}

// Download saves file id into dir under its stored name.
func (a *App) Download(ctx context.Context, id, dir string) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	f, content, err := a.client.DownloadFile(ctx, id)
	if err != nil {
		return err
	}

	dir, err = filex.EnsureDir(dir)
	if err != nil {
		return err
	}

	name := filex.SanitizeName(f.Filename)
	if name == "" {
		name = f.ID
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "saved %s\n", path)
	return nil
}
