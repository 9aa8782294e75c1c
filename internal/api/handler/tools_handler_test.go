package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestToolsHandler_Templates(t *testing.T) {
	h := NewToolsHandler()

	c, rec := newListingContext(t, http.MethodGet, "/v1/tools/contracts", "")
	if err := h.Templates(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(resp))
	}
	if resp[0]["id"] != "sale_v1" || resp[1]["id"] != "rent_v1" {
		t.Fatalf("unexpected template order: %+v", resp)
	}
	slots := resp[0]["placeholders"].([]any)
	if len(slots) == 0 {
		t.Fatalf("expected placeholders for sale template")
	}
}

func TestToolsHandler_RenderContract(t *testing.T) {
	h := NewToolsHandler()

	body := `{"template_id":"sale_v1","bindings":{"SELLER_NAME":"أحمد","BUYER_NAME":"<b>خطر</b>"}}`
	c, rec := newListingContext(t, http.MethodPost, "/v1/tools/contracts", body)
	if err := h.RenderContract(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	doc := resp["document"]
	if !strings.Contains(doc, "أحمد") {
		t.Fatalf("bound value missing from document")
	}
	if strings.Contains(doc, "<b>خطر</b>") {
		t.Fatalf("value was not HTML-escaped")
	}
	if !strings.Contains(doc, "{{PRICE}}") {
		t.Fatalf("unbound placeholder should stay in document")
	}
}

func TestToolsHandler_RenderContract_UnknownTemplate(t *testing.T) {
	h := NewToolsHandler()

	c, _ := newListingContext(t, http.MethodPost, "/v1/tools/contracts", `{"template_id":"nope_v9"}`)
	err := h.RenderContract(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestToolsHandler_Watermark(t *testing.T) {
	h := NewToolsHandler()

	src := image.NewRGBA(image.Rect(0, 0, 120, 90))
	for y := 0; y < 90; y++ {
		for x := 0; x < 120; x++ {
			src.Set(x, y, color.RGBA{R: 200, G: 180, B: 160, A: 255})
		}
	}
	var srcPNG bytes.Buffer
	if err := png.Encode(&srcPNG, src); err != nil {
		t.Fatalf("encode source: %v", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "photo.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(srcPNG.Bytes()); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.WriteField("text", "شركة الاختبار"); err != nil {
		t.Fatalf("write text field: %v", err)
	}
	_ = mw.Close()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/tools/watermark", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Watermark(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "image/png") {
		t.Fatalf("expected image/png, got %q", ct)
	}

	out, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("response is not a decodable png: %v", err)
	}
	if out.Bounds().Dx() != 120 || out.Bounds().Dy() != 90 {
		t.Fatalf("output dimensions changed: %v", out.Bounds())
	}
}

func TestToolsHandler_Watermark_RejectsGarbage(t *testing.T) {
	h := NewToolsHandler()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "bad.png")
	_, _ = fw.Write([]byte("this is not an image"))
	_ = mw.Close()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/tools/watermark", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Watermark(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
