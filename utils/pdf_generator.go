package utils

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ChromePDFGenerator prints HTML documents to A4 PDFs with headless Chrome.
type ChromePDFGenerator struct {
	// ExecPath overrides Chrome discovery when set.
	ExecPath string
	Timeout  time.Duration
}

func NewChromePDFGenerator(execPath string) *ChromePDFGenerator {
	return &ChromePDFGenerator{ExecPath: execPath, Timeout: 30 * time.Second}
}

func (g *ChromePDFGenerator) GeneratePDF(ctx context.Context, html []byte) ([]byte, error) {
	// Chrome loads the document from a temp file so relative CSS and
	// page-size rules apply exactly as in a browser print.
	tmp, err := os.CreateTemp("", "feedback_report_*.html")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(html); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	opts := chromedp.DefaultExecAllocatorOptions[:]
	if g.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(g.ExecPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	if g.Timeout > 0 {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithTimeout(taskCtx, g.Timeout)
		defer cancel()
	}

	path, err := filepath.Abs(tmp.Name())
	if err != nil {
		return nil, err
	}

	var pdfBuf []byte
	err = chromedp.Run(taskCtx,
		chromedp.Navigate("file://"+path),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
