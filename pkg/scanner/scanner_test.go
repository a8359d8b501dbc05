package scanner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/showcase/pkg/catalog"
	"github.com/gnana997/showcase/pkg/util"
)

const buttonSource = `import { cva } from "class-variance-authority";

const buttonVariants = cva("inline-flex items-center", {
  variants: {
    variant: {
      contained: "bg-primary",
      outlined: "border",
      "text-only": "bg-transparent",
    },
    size: {
      small: "h-8",
      medium: "h-10",
      large: "h-12",
    },
  },
  defaultVariants: {
    variant: "outlined",
    size: "medium",
  },
});

export function Button(props: ButtonProps) {
  return <button className={buttonVariants(props)} />;
}
`

const alertSource = `const iconVariants = cva("icon", { variants: { tone: { info: "", warn: "" } } });
export const alertVariants = cva("alert", {
  variants: {
    variant: { info: "bg-blue", error: "bg-red" },
  },
});
export const Alert = () => <div role="alert" />;
`

func newTestScanner(t *testing.T) *Scanner {
	t.Helper()
	s := New(util.NopLogger())
	t.Cleanup(func() { s.Close() })
	return s
}

func scanCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Name: "test",
		Sections: []catalog.Section{
			{Category: catalog.CategoryForms, Entries: []catalog.Entry{
				{Name: "Button", Status: catalog.StatusComplete},
				{Name: "TextField", Status: catalog.StatusNotStarted},
			}},
			{Category: catalog.CategoryFeedback, Entries: []catalog.Entry{
				{Name: "Alert", Status: catalog.StatusInProgress},
			}},
		},
	}
}

func presetNames(ps []catalog.Preset) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestExtractFile_CVA(t *testing.T) {
	s := newTestScanner(t)

	sets, err := s.ExtractFile("button.tsx", []byte(buttonSource))
	require.NoError(t, err)
	require.Len(t, sets, 1)

	set := sets[0]
	assert.Equal(t, "buttonVariants", set.VariableName)
	assert.Equal(t, []string{"variant", "size"}, set.Order)
	assert.Equal(t, []string{"contained", "outlined", "text-only"}, set.Variants["variant"])
	assert.Equal(t, []string{"small", "medium", "large"}, set.Variants["size"])
	assert.Equal(t, "outlined", set.Defaults["variant"])
	assert.Equal(t, "medium", set.Defaults["size"])
}

func TestExtractFile_NoCVA(t *testing.T) {
	s := newTestScanner(t)
	sets, err := s.ExtractFile("plain.jsx", []byte(`export const Plain = () => <div />;`))
	require.NoError(t, err)
	assert.Empty(t, sets)
}

func TestScan_EnrichesMatchingEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "forms/button.tsx", buttonSource)
	writeFile(t, dir, "feedback/Alert.tsx", alertSource)
	writeFile(t, dir, "carousel.tsx", `export const Carousel = () => null;`)

	s := newTestScanner(t)
	cat := scanCatalog()
	out, report, err := s.Scan(context.Background(), dir, cat, DefaultScanConfig())
	require.NoError(t, err)

	assert.Equal(t, 3, report.FilesScanned)
	assert.Equal(t, []string{"carousel.tsx"}, report.Unmatched)
	require.Len(t, report.Matches, 2)

	button, ok := catalog.ByName(out, "Button")
	require.True(t, ok)
	assert.Equal(t, []string{"outlined", "contained", "text-only"}, presetNames(button.Variants), "default first")
	assert.Equal(t, []string{"medium", "small", "large"}, presetNames(button.Sizes))
	assert.Equal(t, "text-only", button.Variants[2].Props["variant"])
	assert.Equal(t, catalog.StatusComplete, button.Status)

	alert, ok := catalog.ByName(out, "Alert")
	require.True(t, ok)
	assert.Equal(t, []string{"info", "error"}, presetNames(alert.Variants))
	assert.Empty(t, alert.Sizes)

	orig, _ := catalog.ByName(cat, "Button")
	assert.Empty(t, orig.Variants, "input catalog must not change")
	assert.Empty(t, out.Validate())
}

func TestScan_KebabCaseFileName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "text-field.tsx", `const textFieldVariants = cva("", { variants: { size: { sm: "", lg: "" } } });`)

	s := newTestScanner(t)
	out, report, err := s.Scan(context.Background(), dir, scanCatalog(), DefaultScanConfig())
	require.NoError(t, err)
	require.Len(t, report.Matches, 1)
	assert.Equal(t, "TextField", report.Matches[0].Entry)

	tf, _ := catalog.ByName(out, "TextField")
	assert.Equal(t, []string{"sm", "lg"}, presetNames(tf.Sizes))
}

func TestScan_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "button.tsx", buttonSource)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestScanner(t)
	_, _, err := s.Scan(ctx, dir, scanCatalog(), ScanConfig{Include: []string{"**/*.tsx"}, Workers: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "textfield", normalizeName("TextField"))
	assert.Equal(t, "textfield", normalizeName("text-field"))
	assert.Equal(t, "textfield", normalizeName("text_field"))
}

const textFieldIndexSource = `import { cva } from "class-variance-authority";

/**
 * Single-line text input.
 * Wraps the native input element.
 *
 * @example <TextField label="Name" />
 */
function TextField(props) {
  return <input className={textFieldVariants(props)} />;
}

const textFieldVariants = cva("", { variants: { variant: { outlined: "", filled: "" } } });
const Label = () => <label />;

/** Decorative adornment. */
export const Adornment = () => <span />;

export { TextField, Label as FieldLabel, textFieldVariants };
`

func TestExtractExports(t *testing.T) {
	s := newTestScanner(t)

	exports, err := s.ExtractExports("index.tsx", []byte(textFieldIndexSource))
	require.NoError(t, err)

	assert.Equal(t, []Export{
		{Name: "Adornment", Doc: "Decorative adornment."},
		{Name: "TextField", Doc: "Single-line text input. Wraps the native input element."},
		{Name: "FieldLabel"},
	}, exports)
}

func TestExtractExports_Default(t *testing.T) {
	s := newTestScanner(t)

	exports, err := s.ExtractExports("alert.jsx", []byte("/** Banner. */\nexport default function Alert() { return null; }\n"))
	require.NoError(t, err)
	assert.Equal(t, []Export{{Name: "Alert", Doc: "Banner.", Default: true}}, exports)

	exports, err = s.ExtractExports("chip.jsx", []byte("const Chip = () => null;\nexport default Chip;\n"))
	require.NoError(t, err)
	assert.Equal(t, []Export{{Name: "Chip", Default: true}}, exports)
}

func TestScan_MatchesByExportName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "text-field/index.tsx", textFieldIndexSource)

	s := newTestScanner(t)
	out, report, err := s.Scan(context.Background(), dir, scanCatalog(), DefaultScanConfig())
	require.NoError(t, err)

	require.Len(t, report.Matches, 1)
	m := report.Matches[0]
	assert.Equal(t, "text-field/index.tsx", m.File)
	assert.Equal(t, "TextField", m.Entry)
	assert.True(t, m.Described)

	tf, _ := catalog.ByName(out, "TextField")
	assert.Equal(t, "Single-line text input. Wraps the native input element.", tf.Description)
	assert.Equal(t, []string{"outlined", "filled"}, presetNames(tf.Variants))
}

func TestScan_KeepsExistingDescription(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Alert.tsx", "/** From source. */\nexport const Alert = () => null;\n")

	cat := scanCatalog()
	cat.Sections[1].Entries[0].Description = "From catalog"

	s := newTestScanner(t)
	out, report, err := s.Scan(context.Background(), dir, cat, DefaultScanConfig())
	require.NoError(t, err)

	alert, _ := catalog.ByName(out, "Alert")
	assert.Equal(t, "From catalog", alert.Description)
	assert.Empty(t, report.Matches, "nothing to contribute")
	assert.Empty(t, report.Unmatched)
}

func TestScan_ExportMatchNeedsNamedSet(t *testing.T) {
	dir := t.TempDir()
	// card.tsx exports Button too, but only cardVariants is declared, so
	// Button must not pick it up.
	writeFile(t, dir, "card.tsx", `const cardVariants = cva("", { variants: { variant: { flat: "" } } });
export const Card = () => null;
export const Button = () => null;
`)

	s := newTestScanner(t)
	out, report, err := s.Scan(context.Background(), dir, scanCatalog(), DefaultScanConfig())
	require.NoError(t, err)

	button, _ := catalog.ByName(out, "Button")
	assert.Empty(t, button.Variants)
	assert.Empty(t, report.Matches)
}

func TestCleanJSDoc(t *testing.T) {
	assert.Equal(t, "One line.", cleanJSDoc("/** One line. */"))
	assert.Equal(t, "First second.", cleanJSDoc("/**\n * First\n * second.\n *\n * Details.\n */"))
	assert.Equal(t, "", cleanJSDoc("/**\n * @deprecated\n */"))
}
