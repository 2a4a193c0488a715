// SPDX-License-Identifier: MIT

package cases

import (
	"fmt"
	"strconv"
	"strings"
)

// NumberForSignature returns the 1-based case number of a case signature
// over the system's term counts.
//
// Errors: ErrSignatureMismatch.
func NumberForSignature(signature, terms []int, e Endianness) (int, error) {
	if err := checkSignature(signature, terms); err != nil {
		return 0, err
	}
	number, weight := 1, 1
	for _, k := range digitOrder(len(terms), e) {
		number += (signature[k] - 1) * weight
		weight *= terms[k]
	}
	return number, nil
}

// SignatureForNumber is the inverse of NumberForSignature.
//
// Errors: ErrCaseNumberZero, ErrCaseNumberOutOfRange.
func SignatureForNumber(number int, terms []int, e Endianness) ([]int, error) {
	if number <= 0 {
		return nil, ErrCaseNumberZero
	}
	total := 1
	for _, t := range terms {
		total *= t
	}
	if number > total {
		return nil, fmt.Errorf("%w: %d > %d", ErrCaseNumberOutOfRange, number, total)
	}
	sig := make([]int, len(terms))
	rest := number - 1
	for _, k := range digitOrder(len(terms), e) {
		sig[k] = rest%terms[k] + 1
		rest /= terms[k]
	}
	return sig, nil
}

// digitOrder lists signature positions from least to most significant.
func digitOrder(n int, e Endianness) []int {
	order := make([]int, n)
	for i := range order {
		if e == LittleEndian {
			order[i] = i
		} else {
			order[i] = n - 1 - i
		}
	}
	return order
}

func checkSignature(signature, terms []int) error {
	if len(signature) != len(terms) {
		return fmt.Errorf("%w: %d entries, want %d", ErrSignatureMismatch, len(signature), len(terms))
	}
	for k, v := range signature {
		if v < 1 || v > terms[k] {
			return fmt.Errorf("%w: entry %d is %d, want 1..%d", ErrSignatureMismatch, k, v, terms[k])
		}
	}
	return nil
}

// formatSignature writes entries ≥ 10 as "(n)" so that digits stay
// unambiguous, e.g. [1 2 10 1] → "12(10)1".
func formatSignature(sig []int) string {
	var b strings.Builder
	for _, v := range sig {
		if v >= 10 {
			b.WriteByte('(')
			b.WriteString(strconv.Itoa(v))
			b.WriteByte(')')
			continue
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// ParseSignature reads the format written by Case.SignatureString.
func ParseSignature(s string) ([]int, error) {
	var sig []int
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			sig = append(sig, int(c-'0'))
		case c == '(':
			end := strings.IndexByte(s[i:], ')')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed '(' in %q", ErrSignatureMismatch, s)
			}
			v, err := strconv.Atoi(s[i+1 : i+end])
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrSignatureMismatch, s, err)
			}
			sig = append(sig, v)
			i += end
		case c == ' ' || c == ',':
		default:
			return nil, fmt.Errorf("%w: unexpected %q in %q", ErrSignatureMismatch, c, s)
		}
	}
	return sig, nil
}
