package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/dexasm/asm"
	"github.com/wippyai/dexasm/disasm"
	"github.com/wippyai/dexasm/encoder"
	"github.com/wippyai/dexasm/format"
	"github.com/wippyai/dexasm/opcode"
)

// readInput reads the named file, or stdin when no file or "-" is given.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, nil
}

func (a *app) encodeCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Assemble instructions into code units",
		Long: "Reads one instruction per line, picks the smallest format for each and\n" +
			"prints a listing, or the raw code units with --format binary.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			instrs, err := asm.Parse(string(src))
			if err != nil {
				return err
			}
			prog, err := encoder.EncodeAll(cmd.Context(), instrs, a.encoderOptions())
			if err != nil {
				return err
			}

			if a.cfg.Format == "binary" {
				data := prog.Bytes(a.cfg.Order())
				if outPath != "" {
					return os.WriteFile(outPath, data, 0o644)
				}
				_, err := a.out.Write(data)
				return err
			}

			a.printLines(programLines(prog))
			if a.cfg.Metrics {
				return a.printMetrics()
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write binary output to this file instead of stdout")
	return cmd
}

// programLines turns an encoded program into listing lines.
func programLines(prog *encoder.Program) []disasm.Line {
	offsets := prog.Offsets()
	lines := make([]disasm.Line, len(prog.Instructions))
	for i, e := range prog.Instructions {
		lines[i] = disasm.Line{
			Instruction: e.Instruction,
			Op:          e.Op,
			Units:       e.Units,
			Offset:      offsets[i],
		}
	}
	return lines
}

func (a *app) disasmCmd() *cobra.Command {
	var hexInput bool

	cmd := &cobra.Command{
		Use:   "disasm [file]",
		Short: "Decode code units into a listing",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if hexInput {
				data, err = hex.DecodeString(strings.Join(strings.Fields(string(data)), ""))
				if err != nil {
					return fmt.Errorf("hex input: %w", err)
				}
			}
			lines, err := disasm.DecodeBytes(data, a.cfg.Order())
			if err != nil {
				return err
			}
			a.printLines(lines)
			return nil
		},
	}
	cmd.Flags().BoolVar(&hexInput, "hex", false, "input is hex text rather than raw bytes")
	return cmd
}

func (a *app) formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the instruction formats",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			table := newTable(a.out, "Format", "Units", "Registers", "Constant")
			for _, f := range format.All() {
				table.Append([]string{
					f.Name(),
					fmt.Sprint(f.CodeSize()),
					regWidths(f.Shape()),
					slotString(f.Shape().Const),
				})
			}
			table.Render()
			return nil
		},
	}
}

func (a *app) opsCmd() *cobra.Command {
	var family string

	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List opcodes, or the candidates of one family",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			ops := opcode.Ops()
			if family != "" {
				fam, ok := opcode.Lookup(family)
				if !ok {
					return fmt.Errorf("unknown family %q", family)
				}
				ops = fam.Ops
			}

			table := newTable(a.out, "Code", "Mnemonic", "Format", "Units", "Writes")
			for _, op := range ops {
				writes := ""
				if op.Dest {
					writes = "yes"
				}
				table.Append([]string{
					fmt.Sprintf("%02x", op.Code),
					op.Name,
					op.Format.Name(),
					fmt.Sprint(op.Format.CodeSize()),
					writes,
				})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&family, "family", "", "show the candidates of this family in selection order")
	return cmd
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.cfg.WriteYAML(a.out)
		},
	}
}

func (a *app) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Encode instructions interactively",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runInteractive(a.encoderOptions())
		},
	}
}
