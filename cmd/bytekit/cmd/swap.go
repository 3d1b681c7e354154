package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssargent/bytekit/pkg/endian"
	"github.com/ssargent/bytekit/pkg/textconv"
)

// swapCmd represents the swap command
var swapCmd = &cobra.Command{
	Use:   "swap <value>",
	Short: "Reverse the byte order of an integer",
	Long: `Reverse the byte order of a fixed-width integer and print the result in
decimal and hexadecimal.

The value may be decimal or 0x-prefixed hexadecimal.

Examples:
  bytekit swap --width 32 0xBBAAFFEF
  bytekit swap --width 16 --signed -- -129`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetInt("width")
		signed, _ := cmd.Flags().GetBool("signed")

		out, err := swapValue(args[0], width, signed)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

// swapValue swaps the integer in s and formats it as "<decimal> 0x<hex>".
func swapValue(s string, width int, signed bool) (string, error) {
	switch width {
	case 8, 16, 32, 64:
	default:
		return "", fmt.Errorf("unsupported width %d: must be 8, 16, 32 or 64", width)
	}

	bitsValue, err := parseBits(s, width, signed)
	if err != nil {
		return "", err
	}

	var swapped uint64
	var decimal string
	switch width {
	case 8:
		swapped = uint64(endian.SwapUint8(uint8(bitsValue)))
		decimal = formatDecimal(int8(swapped), uint8(swapped), signed)
	case 16:
		swapped = uint64(endian.SwapUint16(uint16(bitsValue)))
		decimal = formatDecimal(int16(swapped), uint16(swapped), signed)
	case 32:
		swapped = uint64(endian.SwapUint32(uint32(bitsValue)))
		decimal = formatDecimal(int32(swapped), uint32(swapped), signed)
	case 64:
		swapped = endian.SwapUint64(bitsValue)
		decimal = formatDecimal(int64(swapped), swapped, signed)
	}

	return fmt.Sprintf("%s 0x%0*X", decimal, width/4, swapped), nil
}

// parseBits returns the bit pattern of s at the given width. Hex input is
// taken as a raw pattern; decimal input must fit the signed or unsigned range.
func parseBits(s string, width int, signed bool) (uint64, error) {
	if hex, ok := cutHexPrefix(s); ok {
		v, err := strconv.ParseUint(hex, 16, width)
		if err != nil {
			return 0, fmt.Errorf("invalid hex value %q for width %d: %w", s, width, err)
		}
		return v, nil
	}

	if signed {
		v, err := textconv.FromText[int64](s)
		if err != nil {
			return 0, err
		}
		limit := int64(1) << (width - 1)
		if width < 64 && (v < -limit || v >= limit) {
			return 0, fmt.Errorf("value %d does not fit in int%d", v, width)
		}
		return uint64(v) & mask(width), nil
	}

	v, err := textconv.FromText[uint64](s)
	if err != nil {
		return 0, err
	}
	if v&^mask(width) != 0 {
		return 0, fmt.Errorf("value %d does not fit in uint%d", v, width)
	}
	return v, nil
}

func cutHexPrefix(s string) (string, bool) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:], true
	}
	return s, false
}

func mask(width int) uint64 {
	if width == 64 {
		return ^uint64(0)
	}
	return uint64(1)<<width - 1
}

func formatDecimal[S, U any](s S, u U, signed bool) string {
	if signed {
		return textconv.ToText(s)
	}
	return textconv.ToText(u)
}

func init() {
	rootCmd.AddCommand(swapCmd)
	swapCmd.Flags().IntP("width", "w", 32, "Integer width in bits: 8, 16, 32 or 64")
	swapCmd.Flags().BoolP("signed", "s", false, "Treat the value as a signed integer")
}
