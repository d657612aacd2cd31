package htmldom

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/jsonview/pkg/dom"
	"github.com/matzehuels/jsonview/pkg/errors"
)

func TestCreateAndAttach(t *testing.T) {
	d := New()
	div := d.CreateElement("DIV")
	if div.Parent() != nil {
		t.Fatal("new element should be detached")
	}
	if dom.IsAttached(d, div) {
		t.Fatal("IsAttached should be false before mounting")
	}

	if err := dom.Mount(d.Body(), div); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if div.Parent() != d.Body() {
		t.Error("parent should be the body")
	}
	if !dom.IsAttached(d, div) {
		t.Error("IsAttached should be true after mounting")
	}

	div.Remove()
	if dom.IsAttached(d, div) {
		t.Error("IsAttached should be false after Remove")
	}
	div.Remove() // no-op when detached
}

func TestMountMissingTarget(t *testing.T) {
	d := New()
	err := dom.Mount(nil, d.CreateElement("div"))
	if !errors.Is(err, errors.ErrCodeMissingTarget) {
		t.Fatalf("err = %v, want MISSING_TARGET", err)
	}
}

func TestInnerHTMLAndQuery(t *testing.T) {
	d := New()
	line := d.CreateElement("div")
	err := line.SetInnerHTML(`<div class="caret-icon"><i class="fas fa-caret-right"></i></div><span class="json-key">numbers</span>`)
	if err != nil {
		t.Fatalf("SetInnerHTML: %v", err)
	}

	caret, err := line.QuerySelector(".caret-icon")
	if err != nil || caret == nil {
		t.Fatalf("QuerySelector(.caret-icon) = %v, %v", caret, err)
	}
	icon, _ := line.QuerySelector("i")
	if icon == nil || !icon.ClassList().Contains("fa-caret-right") {
		t.Fatal("icon not found")
	}
	if icon.Parent() != caret {
		t.Error("icon parent should be the caret wrapper")
	}
	key, _ := line.QuerySelector(".json-key")
	if key.TextContent() != "numbers" {
		t.Errorf("TextContent = %q", key.TextContent())
	}

	missing, err := line.QuerySelector(".json-size")
	if err != nil || missing != nil {
		t.Errorf("missing element: got %v, %v", missing, err)
	}

	self, _ := caret.QuerySelector(".caret-icon")
	if self != nil {
		t.Error("QuerySelector should not match the element itself")
	}

	if _, err := line.QuerySelector("[[["); err == nil {
		t.Error("invalid selector should fail")
	}
}

func TestClassList(t *testing.T) {
	d := New()
	el := d.CreateElement("i")
	cl := el.ClassList()
	cl.Add("fas", "fa-caret-right")
	cl.Add("fas")
	if got, _ := el.Attribute("class"); got != "fas fa-caret-right" {
		t.Errorf("class = %q", got)
	}
	cl.Remove("fa-caret-right")
	cl.Add("fa-caret-down")
	if cl.Contains("fa-caret-right") || !cl.Contains("fa-caret-down") {
		t.Errorf("class = %q", el.(*Element).attr("class"))
	}
	cl.Remove("fas", "fa-caret-down")
	if _, ok := el.Attribute("class"); ok {
		t.Error("empty class list should drop the attribute")
	}
}

func TestStyle(t *testing.T) {
	d := New()
	el := d.CreateElement("div")
	el.SetStyle("margin-left", "18px")
	el.SetStyle("color", "red")
	el.SetStyle("margin-left", "36px")
	if got, _ := el.Attribute("style"); got != "margin-left: 36px; color: red;" {
		t.Errorf("style = %q", got)
	}
	if el.Style("color") != "red" {
		t.Errorf("Style(color) = %q", el.Style("color"))
	}
	el.SetStyle("color", "")
	el.SetStyle("margin-left", "")
	if _, ok := el.Attribute("style"); ok {
		t.Error("empty style should drop the attribute")
	}
}

func TestDispatchBubbles(t *testing.T) {
	d := New()
	outer := d.CreateElement("div")
	_ = outer.SetInnerHTML(`<span><i></i></span>`)
	inner, _ := outer.QuerySelector("i")

	var got []string
	removeOuter := outer.AddEventListener("click", func() { got = append(got, "outer") })
	inner.AddEventListener("click", func() { got = append(got, "inner") })
	outer.AddEventListener("keydown", func() { got = append(got, "key") })

	d.Click(inner)
	if strings.Join(got, ",") != "inner,outer" {
		t.Errorf("order = %v", got)
	}
	if d.ListenerCount() != 3 {
		t.Errorf("ListenerCount = %d, want 3", d.ListenerCount())
	}

	removeOuter()
	removeOuter()
	got = nil
	d.Click(inner)
	if strings.Join(got, ",") != "inner" {
		t.Errorf("after remove = %v", got)
	}
	if d.ListenerCount() != 2 {
		t.Errorf("ListenerCount = %d, want 2", d.ListenerCount())
	}
}

func TestListenDisposerOnce(t *testing.T) {
	d := New()
	el := d.CreateElement("div")
	calls := 0
	dispose := dom.Listen(el, "click", func() { calls++ })
	d.Click(el)
	dispose()
	dispose()
	d.Click(el)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if d.ListenerCount() != 0 {
		t.Errorf("ListenerCount = %d, want 0", d.ListenerCount())
	}
}

func TestRender(t *testing.T) {
	d := New()
	el := d.CreateElement("div")
	el.SetAttribute("data-view", "x")
	_ = el.SetInnerHTML(`<span class="json-string">&#34;a&lt;b&#34;</span>`)
	_ = dom.Mount(d.Body(), el)

	if got := OuterHTML(el); got != `<div data-view="x"><span class="json-string">&#34;a&lt;b&#34;</span></div>` {
		t.Errorf("OuterHTML = %s", got)
	}

	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `<body><div data-view="x">`) {
		t.Errorf("Render = %s", buf.String())
	}

	found, _ := d.QuerySelector(`[data-view="x"]`)
	if found != el {
		t.Error("document query should return the same wrapper")
	}
}
