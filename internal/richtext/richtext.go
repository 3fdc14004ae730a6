package richtext

import (
	"regexp"
	"strings"
)

// 节点类型
const (
	NodeRoot      = "root"
	NodeParagraph = "paragraph"
	NodeHeading   = "heading"
	NodeText      = "text"
)

// Node 富文本树节点
type Node struct {
	Type     string `json:"type"`
	Level    int    `json:"level,omitempty"` // 仅 heading 使用，1-3
	Text     string `json:"text,omitempty"`  // 仅 text 叶子使用
	Children []Node `json:"children,omitempty"`
}

// Document 富文本文档，root 下挂块级节点
type Document struct {
	Root Node `json:"root"`
}

// NewDocument 创建空文档（合法的根节点，零个子节点）
func NewDocument() *Document {
	return &Document{Root: Node{Type: NodeRoot, Children: []Node{}}}
}

// ToPlainText 富文本树转纯文本（导出方向）
// 每个块级节点内深度优先拼接所有文本叶子，块之间用空行连接。
// 非文本、非容器节点贡献空串；空树或非法输入返回空串。
func ToPlainText(doc *Document) string {
	if doc == nil || doc.Root.Type != NodeRoot || len(doc.Root.Children) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(doc.Root.Children))
	for _, block := range doc.Root.Children {
		blocks = append(blocks, collectText(block))
	}
	return strings.Join(blocks, "\n\n")
}

// collectText 深度优先收集节点下所有文本叶子
func collectText(n Node) string {
	if n.Type == NodeText {
		return n.Text
	}
	var sb strings.Builder
	for _, child := range n.Children {
		sb.WriteString(collectText(child))
	}
	return sb.String()
}

var blockSplitRe = regexp.MustCompile(`\n{2,}`)

// FromPlainText 纯文本转富文本树（导入方向）
// 两个以上连续换行切块，块内单个换行折叠为空格。
// "# " / "## " / "### " 前缀的块成为 1-3 级标题；
// 四个以上 # 或 # 后无空格的按普通段落处理。
// 空白输入返回空树，不报错。
func FromPlainText(text string) *Document {
	doc := NewDocument()

	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return doc
	}

	for _, raw := range blockSplitRe.Split(text, -1) {
		block := strings.TrimSpace(strings.ReplaceAll(raw, "\n", " "))
		if block == "" {
			continue
		}

		if level, rest, ok := headingPrefix(block); ok {
			doc.Root.Children = append(doc.Root.Children, Node{
				Type:     NodeHeading,
				Level:    level,
				Children: []Node{{Type: NodeText, Text: rest}},
			})
			continue
		}

		doc.Root.Children = append(doc.Root.Children, Node{
			Type:     NodeParagraph,
			Children: []Node{{Type: NodeText, Text: block}},
		})
	}

	return doc
}

// headingPrefix 识别标题前缀，返回级别与去前缀后的文本
func headingPrefix(block string) (level int, rest string, ok bool) {
	hashes := 0
	for hashes < len(block) && block[hashes] == '#' {
		hashes++
	}
	if hashes < 1 || hashes > 3 {
		return 0, "", false
	}
	if hashes >= len(block) || block[hashes] != ' ' {
		return 0, "", false
	}
	return hashes, strings.TrimSpace(block[hashes+1:]), true
}
