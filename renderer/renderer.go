package renderer

import (
	"github.com/ByLCY/typeset/node"
)

// Renderer 将一棵盒子树输出为最终文件，例如 PDF 或图像。
// Render 通过 layoutreader.Read 遍历 root，为每个叶子节点（CharBox/Rule）
// 调用绘制逻辑，返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(root node.Node) ([]byte, error)
}
