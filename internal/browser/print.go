package browser

import (
	"context"
	"fmt"
	"io"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Printer prints HTML documents to PDF through a headless Chrome, the same
// engine the print dialog uses.
type Printer struct {
	// Bin is an optional Chrome binary; empty lets rod find or download one.
	Bin string
}

func (p Printer) PrintHTML(ctx context.Context, html string) ([]byte, error) {
	l := launcher.New().Headless(true).Context(ctx)
	if p.Bin != "" {
		l = l.Bin(p.Bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	defer l.Cleanup()

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer b.Close()

	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("load print view: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait print view: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{PrintBackground: true, PreferCSSPageSize: true})
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	return io.ReadAll(stream)
}
