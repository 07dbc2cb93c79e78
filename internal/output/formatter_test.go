package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	From    string
	Subject string
}

var (
	testColumns = []Column{
		{Name: "From", Key: "From"},
		{Name: "Subject", Key: "Subject"},
	}
	testRows = []row{
		{From: "alice@example.com", Subject: "Q2 report"},
		{From: "bob@example.com", Subject: "Re: lunch | tomorrow"},
	}
)

func TestNewRecognizedFormats(t *testing.T) {
	for _, format := range Formats {
		f, err := New(format)
		require.NoError(t, err, format)
		assert.NotNil(t, f, format)
	}
}

func TestNewUnknownFormat(t *testing.T) {
	f, err := New("yaml")
	assert.Nil(t, f)

	var unknown *UnknownFormatError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "yaml", unknown.Format)
	assert.Contains(t, err.Error(), "yaml")
}

func TestTextPrintList(t *testing.T) {
	var buf bytes.Buffer
	f := &textFormatter{w: &buf, errW: &buf}

	require.NoError(t, f.PrintList(testRows, testColumns))
	assert.Equal(t,
		"From\tSubject\n"+
			"alice@example.com\tQ2 report\n"+
			"bob@example.com\tRe: lunch | tomorrow\n",
		buf.String())
}

func TestCSVPrintList(t *testing.T) {
	var buf bytes.Buffer
	f := &csvFormatter{w: &buf, errW: &buf}

	require.NoError(t, f.PrintList(testRows, testColumns))
	assert.Equal(t,
		"From,Subject\n"+
			"alice@example.com,Q2 report\n"+
			"bob@example.com,Re: lunch | tomorrow\n",
		buf.String())
}

func TestJSONLPrintList(t *testing.T) {
	var buf bytes.Buffer
	f := &jsonlFormatter{w: &buf, errW: &buf}

	require.NoError(t, f.PrintList(testRows, testColumns))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first row
	require.NoError(t, json.Unmarshal(lines[0], &first))
	assert.Equal(t, testRows[0], first)
}

func TestJSONPrintListIsRawArray(t *testing.T) {
	var buf bytes.Buffer
	f := &jsonFormatter{w: &buf, errW: &buf}

	require.NoError(t, f.PrintList(testRows, testColumns))

	var decoded []row
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testRows, decoded)
}

func TestMarkdownPrintList(t *testing.T) {
	var buf bytes.Buffer
	f := &markdownFormatter{w: &buf, errW: &buf}

	require.NoError(t, f.PrintList(testRows, testColumns))
	assert.Equal(t,
		"| From | Subject |\n"+
			"| --- | --- |\n"+
			"| alice@example.com | Q2 report |\n"+
			`| bob@example.com | Re: lunch \| tomorrow |`+"\n",
		buf.String())
}

func TestPrintListRejectsNonSlice(t *testing.T) {
	var buf bytes.Buffer
	f := &textFormatter{w: &buf, errW: &buf}

	err := f.PrintList(testRows[0], testColumns)
	assert.Error(t, err)
}

func TestColumnWidthTruncation(t *testing.T) {
	var buf bytes.Buffer
	f := &textFormatter{w: &buf, errW: &buf}

	columns := []Column{{Name: "Subject", Key: "Subject", Width: 6}}
	require.NoError(t, f.PrintList(testRows[:1], columns))
	assert.Equal(t, "Subject\nQ2 ...\n", buf.String())
}

func TestDiscardFormatterStaysQuiet(t *testing.T) {
	f := Discard()
	assert.NoError(t, f.Print(testRows[0]))
	assert.NoError(t, f.PrintList(testRows, testColumns))
}
