package xlfill

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// maxFetchBytes caps remote downloads of templates and images.
const maxFetchBytes = 64 << 20

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// fetchBytes downloads a remote resource with the processor's client.
func (p *Processor) fetchBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewError(KindValidation, fmt.Sprintf("invalid url %q", url), err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, NewError(KindFetch, fmt.Sprintf("fetch %q", url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewError(KindFetch, fmt.Sprintf("fetch %q: status %d", url, resp.StatusCode), nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes+1))
	if err != nil {
		return nil, NewError(KindFetch, fmt.Sprintf("read %q", url), err)
	}
	if len(data) > maxFetchBytes {
		return nil, NewError(KindFetch, fmt.Sprintf("fetch %q: response exceeds %d bytes", url, maxFetchBytes), nil)
	}
	return data, nil
}

// loadWorkbook opens a template from a local path or an http(s) URL.
func (p *Processor) loadWorkbook(ctx context.Context, src string) (*excelize.File, error) {
	if isRemote(src) {
		data, err := p.fetchBytes(ctx, src)
		if err != nil {
			return nil, err
		}
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, NewError(KindValidation, fmt.Sprintf("parse template %q", src), err)
		}
		return file, nil
	}

	if _, err := os.Stat(src); err != nil {
		return nil, NewError(KindNotFound, fmt.Sprintf("template %q not found", src), err)
	}
	file, err := excelize.OpenFile(filepath.Clean(src))
	if err != nil {
		return nil, NewError(KindValidation, fmt.Sprintf("parse template %q", src), err)
	}
	return file, nil
}
