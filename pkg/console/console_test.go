package console_test

import (
	"bytes"
	"testing"

	"github.com/julien-sobczak/sprout/pkg/console"
	"gotest.tools/assert"
)

func TestProgress(t *testing.T) {
	var out bytes.Buffer

	p := console.NewProgress(2,
		// Override options for unit-testing purposes
		console.ToWriter(&out),
		console.LineLength(30))

	p.Log(0, "go.md")
	p.Step("go.md")
	p.Step("rust.md")
	p.Done("2 cards indexed")

	expected := "" +
		"           (0/2) go.md        \r" +
		"#####      (1/2) go.md        \r" +
		"########## (2/2) rust.md      \r" +
		"2 cards indexed               \n"
	assert.Equal(t, out.String(), expected)
}

func TestProgressPercent(t *testing.T) {
	var out bytes.Buffer

	p := console.NewProgress(5,
		console.ShowPercent(),
		console.HideBar(),
		// Override options for unit-testing purposes
		console.ToWriter(&out),
		console.LineLength(20))

	for range 6 {
		// Extra steps are ignored
		p.Step("Indexing documents...")
	}
	p.Done("")

	expected := "" +
		"( 20%) Indexing docu\r" +
		"( 40%) Indexing docu\r" +
		"( 60%) Indexing docu\r" +
		"( 80%) Indexing docu\r" +
		"(100%) Indexing docu\r" +
		"(100%) Indexing docu\r" +
		"                    \r"
	assert.Equal(t, out.String(), expected)
}

func TestProgressWithoutSteps(t *testing.T) {
	var out bytes.Buffer

	p := console.NewProgress(0, console.ToWriter(&out), console.LineLength(20))
	p.Log(0, "Empty")

	assert.Equal(t, out.String(), "########## (0/0) Emp\r")
}
