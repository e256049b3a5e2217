package compose

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// Sentinel errors returned by the parser.
var (
	ErrFileNotFound  = errors.New("compose file not found")
	ErrInvalidYAML   = errors.New("invalid yaml")
	ErrInvalidOption = errors.New("invalid option")
)

// servicesKey is the top-level mapping the parser walks. Documents without
// it parse to an empty result.
const servicesKey = "services"

// Parser extracts documented environment variables from Docker Compose
// files. A Parser is stateless and safe for concurrent use; all per-parse
// state lives in a scanState owned by a single Parse call.
//
// Create instances with [NewParser].
type Parser struct {
	displayPath       func(string) string
	keepEmptyServices bool
}

// Option configures a [Parser].
type Option func(*Parser)

// NewParser creates a Parser with the given options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithKeepEmptyServices keeps services with zero documented variables in
// the result instead of omitting them.
func WithKeepEmptyServices(keep bool) Option {
	return func(p *Parser) {
		p.keepEmptyServices = keep
	}
}

// WithDisplayPath sets the function applied to the input path to produce
// [ServicesDoc.SourceFile]. Use [PathRewriter] to remap container mount
// prefixes back to host paths.
func WithDisplayPath(f func(string) string) Option {
	return func(p *Parser) {
		p.displayPath = f
	}
}

// ParseFile reads and parses the compose file at path.
func (p *Parser) ParseFile(path string) (*ServicesDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}

		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return p.Parse(path, data)
}

// Parse parses data as a compose file. The path is used for display and
// error messages only; no I/O occurs.
func (p *Parser) Parse(path string, data []byte) (*ServicesDoc, error) {
	doc, err := loadDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	state := newScanState(doc)

	// A document without a services mapping is a valid, empty result.
	// Skip the comment pass entirely so stray comments in non-compose
	// YAML do not produce warnings.
	if state.walkServices() {
		state.associateComments()
	}

	return p.assemble(path, state), nil
}

// rawDocument pairs a compose file's raw lines with its parsed AST body.
// Immutable once loaded; owned by one parse operation.
type rawDocument struct {
	body  ast.Node
	lines []string
}

func loadDocument(data []byte) (*rawDocument, error) {
	file, err := parser.ParseBytes(data, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}

	doc := &rawDocument{lines: strings.Split(string(data), "\n")}

	if len(file.Docs) > 0 {
		doc.body = file.Docs[0].Body
	}

	return doc, nil
}

// occurrence is one environment variable mention found during the walk,
// prior to comment association. line is the 0-based raw line of the
// declaring node's token; warnings report it 1-based.
type occurrence struct {
	def         *string
	name        string
	description string
	path        []string
	line        int
}

// scanState carries the mutable state of one parse: the occurrence list in
// declaration order, the line index mapping raw lines to the occurrences
// declared there, service key lines, and accumulated diagnostics. It is
// local to a single Parse call, never shared.
type scanState struct {
	doc          *rawDocument
	anchors      map[string]ast.Node
	lineIndex    map[int][]*occurrence
	serviceLines map[int]string
	serviceDescs map[string]string
	occurrences  []*occurrence
	serviceOrder []string
	warnings     []string
}

func newScanState(doc *rawDocument) *scanState {
	return &scanState{
		doc:          doc,
		lineIndex:    make(map[int][]*occurrence),
		serviceLines: make(map[int]string),
		serviceDescs: make(map[string]string),
	}
}

func (s *scanState) add(o *occurrence) {
	s.occurrences = append(s.occurrences, o)
	s.lineIndex[o.line] = append(s.lineIndex[o.line], o)
}

func (s *scanState) warnf(format string, args ...any) {
	s.warnings = append(s.warnings, fmt.Sprintf(format, args...))
}

// walkServices locates the top-level services mapping and walks each
// service's configuration. Returns false if the document has no services
// mapping.
func (s *scanState) walkServices() bool {
	if s.doc.body == nil {
		return false
	}

	s.anchors = buildAnchorMap(s.doc.body)

	for _, mvn := range mappingValues(unwrapNode(s.doc.body)) {
		if mvn.Key.String() != servicesKey {
			continue
		}

		services := unwrapNode(resolveAlias(mvn.Value, s.anchors))

		for _, svc := range mappingValues(services) {
			name := svc.Key.String()
			s.serviceLines[nodeLine(svc.Key)] = name
			s.serviceOrder = append(s.serviceOrder, name)
			s.walkValue(svc.Value, []string{servicesKey, name})
		}

		return true
	}

	return false
}

// walkValue dispatches on the value's node kind, recursing through
// mappings and sequences and extracting occurrences from scalar leaves.
func (s *scanState) walkValue(node ast.Node, path []string) {
	node = unwrapNode(resolveAlias(node, s.anchors))

	switch n := node.(type) {
	case *ast.MappingNode:
		for _, mvn := range n.Values {
			s.walkPair(mvn, path)
		}
	case *ast.MappingValueNode:
		s.walkPair(n, path)
	case *ast.SequenceNode:
		for i, elem := range n.Values {
			s.walkElement(elem, path, i)
		}
	default:
		if text, ok := scalarText(node); ok && strings.Contains(text, "$") {
			s.addSubstitutions(text, path, nodeLine(node))
		}
	}
}

// walkPair processes one key-value pair of a mapping under a service.
func (s *scanState) walkPair(mvn *ast.MappingValueNode, path []string) {
	if _, ok := mvn.Key.(*ast.MergeKeyNode); ok {
		// <<: *anchor merges the referenced mapping into this service's
		// path. Occurrences keep the anchor definition's source lines, so
		// one comment above the anchor documents every merge site.
		s.walkValue(mvn.Value, path)

		return
	}

	key := mvn.Key.String()
	childPath := appendPath(path, key)
	value := unwrapNode(resolveAlias(mvn.Value, s.anchors))

	switch v := value.(type) {
	case *ast.MappingNode, *ast.MappingValueNode:
		s.walkValue(value, childPath)
	case *ast.SequenceNode:
		for i, elem := range v.Values {
			s.walkElement(elem, childPath, i)
		}
	default:
		s.scalarPair(mvn, key, value, path, childPath)
	}
}

// scalarPair handles a mapping pair whose value is a scalar. Below the
// service property level (environment, labels, ...) the mapping key itself
// names the variable; at the property level (image, container_name, ...)
// only substitution references count.
func (s *scanState) scalarPair(
	mvn *ast.MappingValueNode,
	key string,
	value ast.Node,
	parentPath, childPath []string,
) {
	text, hasText := scalarText(value)

	if len(parentPath) > 2 {
		var def *string
		if hasText {
			def = DefaultFromValue(text)
		}

		s.add(&occurrence{
			name: key,
			def:  def,
			path: childPath,
			line: nodeLine(mvn.Key),
		})

		return
	}

	if hasText && strings.Contains(text, "$") {
		s.addSubstitutions(text, childPath, nodeLine(value))
	}
}

// envEntryRegex matches the KEY side of a "KEY=VALUE" list entry. Leading
// dashes and slashes disqualify command flags and paths.
var envEntryRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// walkElement processes one element of a sequence under a service.
func (s *scanState) walkElement(elem ast.Node, path []string, idx int) {
	elem = unwrapNode(resolveAlias(elem, s.anchors))
	childPath := appendPath(path, strconv.Itoa(idx))

	switch elem.(type) {
	case *ast.MappingNode, *ast.MappingValueNode, *ast.SequenceNode:
		s.walkValue(elem, childPath)

		return
	}

	text, ok := scalarText(elem)
	if !ok {
		return
	}

	if name, value, found := strings.Cut(text, "="); found {
		name = strings.TrimSpace(name)
		if envEntryRegex.MatchString(name) {
			var def *string
			if value != "" {
				def = DefaultFromValue(value)
			}

			s.add(&occurrence{
				name: name,
				def:  def,
				path: childPath,
				line: nodeLine(elem),
			})

			return
		}
	}

	if strings.Contains(text, "$") {
		s.addSubstitutions(text, childPath, nodeLine(elem))
	}
}

func (s *scanState) addSubstitutions(text string, path []string, line int) {
	for _, v := range ExtractVariables(text) {
		s.add(&occurrence{
			name: v.Name,
			def:  v.Default,
			path: path,
			line: line,
		})
	}
}

// appendPath copies-and-appends so sibling paths never alias the same
// backing array.
func appendPath(path []string, elem string) []string {
	return append(path[:len(path):len(path)], elem)
}

// mappingValues returns the key-value pairs of a mapping node, handling
// the single-pair case where the parser yields a bare MappingValueNode.
func mappingValues(node ast.Node) []*ast.MappingValueNode {
	switch n := node.(type) {
	case *ast.MappingNode:
		return n.Values
	case *ast.MappingValueNode:
		return []*ast.MappingValueNode{n}
	}

	return nil
}

// scalarText returns the string form of a scalar node. Null and missing
// values report ok=false.
func scalarText(node ast.Node) (string, bool) {
	switch n := node.(type) {
	case *ast.StringNode:
		return n.Value, true
	case *ast.LiteralNode:
		return n.Value.Value, true
	case *ast.IntegerNode, *ast.FloatNode, *ast.BoolNode:
		return node.GetToken().Value, true
	case nil, *ast.NullNode:
		return "", false
	}

	return "", false
}

// nodeLine returns the 0-based raw line of a node's first token.
func nodeLine(node ast.Node) int {
	return node.GetToken().Position.Line - 1
}

// unwrapNode resolves TagNode and AnchorNode wrappers to the underlying
// value node.
func unwrapNode(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.TagNode:
			node = n.Value
		case *ast.AnchorNode:
			node = n.Value
		default:
			return node
		}
	}
}

// buildAnchorMap walks the AST and collects all anchor definitions.
func buildAnchorMap(node ast.Node) map[string]ast.Node {
	anchors := make(map[string]ast.Node)

	ast.Walk(&anchorVisitor{anchors: anchors}, node)

	return anchors
}

type anchorVisitor struct {
	anchors map[string]ast.Node
}

// Visit implements the [ast.Visitor] interface.
func (v *anchorVisitor) Visit(node ast.Node) ast.Visitor {
	if anchor, ok := node.(*ast.AnchorNode); ok {
		v.anchors[anchor.Name.String()] = anchor.Value
	}

	return v
}

// resolveAlias resolves an alias node using the anchor map. Unresolvable
// aliases are treated as null.
func resolveAlias(node ast.Node, anchors map[string]ast.Node) ast.Node {
	if node == nil {
		return nil
	}

	alias, ok := node.(*ast.AliasNode)
	if !ok {
		return node
	}

	if resolved, found := anchors[alias.Value.String()]; found {
		return resolved
	}

	return nil
}
