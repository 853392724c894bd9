package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ByLCY/typeset/binding"
	"github.com/ByLCY/typeset/dsl"
	"github.com/ByLCY/typeset/mode"
	"github.com/ByLCY/typeset/node"
	"github.com/ByLCY/typeset/preprocessor"
	"github.com/ByLCY/typeset/renderer"
	canvasrenderer "github.com/ByLCY/typeset/renderer/canvas"
	"github.com/ByLCY/typeset/token"
)

func main() {
	input := flag.String("in", "examples/demo.typeset", "paragraph-source 文件路径")
	output := flag.String("out", "output/demo.pdf", "PDF 输出路径")
	debug := flag.String("debug", "", "调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到 body/macros 的 JSON 数据")
	fontSize := flag.Float64("size", 24, "占位字形的基准字号（pt）")
	flag.Parse()

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	r := canvasrenderer.NewRenderer()
	if err := run(*input, *output, *debug, inputData, *fontSize, r); err != nil {
		log.Fatalf("排版失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", *output)
}

// run 串联解析、宏预处理、模式机与渲染。
func run(inputPath, outputPath, debugPath string, data any, size float64, r renderer.Renderer) error {
	if r == nil {
		return fmt.Errorf("renderer 不能为空")
	}

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开源文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析失败: %w", err)
	}

	par, err := doc.Config.Paragraph()
	if err != nil {
		return fmt.Errorf("config 解析失败: %w", err)
	}

	pp := preprocessor.New()
	if doc.Macros != nil {
		if err := feedMacros(pp, string(doc.Macros.Raw)); err != nil {
			return fmt.Errorf("宏定义解析失败: %w", err)
		}
	}

	bodyText := string(doc.Body.Raw)
	if data != nil {
		bodyText = binding.Interpolate(bodyText, data)
	}

	m := mode.NewMachine(placeholderMetrics{Size: size}, par)
	if err := feedBody(pp, m, bodyText); err != nil {
		return fmt.Errorf("排版失败: %w", err)
	}

	vlist := m.VList
	if len(vlist) == 0 {
		return fmt.Errorf("排版结果为空：body 没有产生任何可见内容")
	}
	root := node.NewVBox(vlist, vlistNaturalHeight(vlist), par.Tolerance)
	root.Box.Width = par.HSize

	if debugPath != "" {
		if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
		if err := writeDebugJSON(vlist, m.LastBreakpoints, debugPath); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	pdfBytes, err := r.Render(root)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}

	return nil
}

// vlistNaturalHeight sums a vertical list's natural extent (boxes by
// height+depth, glue by its nominal space), the same accumulation
// node.NewVBox performs internally, so passing it back in as the
// target height yields a ratio of exactly 0.
func vlistNaturalHeight(vlist []node.Node) float64 {
	var h float64
	for _, c := range vlist {
		switch n := c.(type) {
		case node.GlueNode:
			h += n.Glue.Space.Value
		case node.HBox:
			h += n.Box.Height + n.Box.Depth
		case node.VBox:
			h += n.Box.Height + n.Box.Depth
		default:
			h += c.NaturalWidth()
		}
	}
	return h
}

// feedMacros tokenizes raw macro source and runs it through the
// preprocessor purely for its side effect (registering \def'd
// macros); any tokens it would emit to Output are discarded, since a
// macros block exists only to populate the scope, not to produce
// typeset material of its own.
func feedMacros(pp *preprocessor.Preprocessor, raw string) error {
	tok := token.New()
	for _, r := range raw {
		tok.Feed(r)
	}
	for _, t := range tok.Drain() {
		if err := pp.Write(t); err != nil {
			return err
		}
		if err := pp.Advance(); err != nil {
			return err
		}
	}
	pp.Output = nil
	return nil
}

// feedBody tokenizes the body text, expands macros through pp, and
// advances the mode machine with every expanded token. A synthetic
// \par is issued at the end so a body with no trailing \par still
// flushes its final paragraph.
func feedBody(pp *preprocessor.Preprocessor, m *mode.Machine, raw string) error {
	tok := token.New()
	for _, r := range raw {
		tok.Feed(r)
	}
	for _, t := range tok.Drain() {
		if err := pp.Write(t); err != nil {
			return err
		}
		if err := pp.Advance(); err != nil {
			return err
		}
		for _, out := range pp.Output {
			if err := m.Advance(out); err != nil {
				return err
			}
		}
		pp.Output = nil
	}

	if m.Depth() > 1 {
		if err := m.Advance(token.ControlSeq("par")); err != nil {
			return err
		}
	}
	return nil
}
