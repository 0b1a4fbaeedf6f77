package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"partref/internal/ast"
	"partref/internal/source"
)

// ASTNodeOutput — узел дерева для JSON-дампа разбора.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	Span     source.Span     `json:"span"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// formatSpan formats a source.Span into a string.
// If fs is non-nil, it resolves the span and returns "startLine:startCol-endLine:endCol".
// If fs is nil, it returns "span(start-end)".
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

// FormatASTPretty печатает дерево деклараций файла.
// Декларации идут по категориям (package, part, record, view, transfer),
// порядок внутри категории — исходный.
func FormatASTPretty(w io.Writer, file *ast.File, fs *source.FileSet) error {
	if file == nil {
		return fmt.Errorf("nil file")
	}

	fmt.Fprintf(w, "File (span: %s)\n", formatSpan(file.Span, fs))

	nodes := fileNodes(file)
	for i, node := range nodes {
		branch, prefix := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, prefix = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s (%s)\n", branch, node.Text, formatSpan(node.Span, fs))
		for j, child := range node.Children {
			childBranch := "├─ "
			if j == len(node.Children)-1 {
				childBranch = "└─ "
			}
			fmt.Fprintf(w, "%s%s%s (%s)\n", prefix, childBranch, child.Text, formatSpan(child.Span, fs))
		}
	}
	return nil
}

// FormatASTJSON выводит то же дерево в JSON.
func FormatASTJSON(w io.Writer, file *ast.File) error {
	if file == nil {
		return fmt.Errorf("nil file")
	}

	root := ASTNodeOutput{
		Type:     "file",
		Span:     file.Span,
		Children: fileNodes(file),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

func fileNodes(file *ast.File) []ASTNodeOutput {
	var nodes []ASTNodeOutput

	if file.Package.Name.IsValid() {
		nodes = append(nodes, ASTNodeOutput{
			Type: "package",
			Text: "package " + file.Package.Name.Name,
			Span: file.Package.Span,
		})
	}

	for i := range file.Parts {
		nodes = append(nodes, partNode(&file.Parts[i]))
	}
	for i := range file.Records {
		nodes = append(nodes, recordNode(&file.Records[i]))
	}
	for i := range file.Views {
		nodes = append(nodes, viewNode(&file.Views[i]))
	}
	for i := range file.Transfers {
		tr := &file.Transfers[i]
		nodes = append(nodes, ASTNodeOutput{
			Type: tr.Kind.String(),
			Text: tr.Kind.String() + " " + tr.Dst.Name + " from " + tr.Src.Name,
			Span: tr.Span,
		})
	}
	return nodes
}

func partNode(p *ast.PartDecl) ASTNodeOutput {
	text := "part " + p.Name.Name
	switch p.Kind {
	case ast.PartField:
		text += ": " + p.Type.String()
	case ast.PartRecord:
		text += ": record " + p.Record.Name
	default:
		text += " (opaque)"
	}
	return ASTNodeOutput{Type: "part", Text: text, Span: p.Span}
}

func recordNode(r *ast.RecordDecl) ASTNodeOutput {
	node := ASTNodeOutput{
		Type: "record",
		Text: "record " + r.Name.Name,
		Span: r.Span,
	}
	for _, b := range r.Bindings {
		text := b.Part.Name
		if b.HasField {
			text += " from " + b.Field.Name
		}
		node.Children = append(node.Children, ASTNodeOutput{
			Type: "binding",
			Text: text,
			Span: b.Span,
		})
	}
	return node
}

func viewNode(v *ast.ViewDecl) ASTNodeOutput {
	node := ASTNodeOutput{
		Type: "view",
		Text: "view " + v.Name.Name + " of " + v.Record.Name,
		Span: v.Span,
	}
	for i := range v.Entries {
		e := &v.Entries[i]
		text := e.PathString()
		if e.Mut {
			text = "mut " + text
		}
		node.Children = append(node.Children, ASTNodeOutput{
			Type: "entry",
			Text: text,
			Span: e.Span,
		})
	}
	return node
}
