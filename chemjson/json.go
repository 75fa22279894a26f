/*
 * json.go, part of corelevels.
 *
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package chemjson

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	chem "github.com/rmera/corelevels"
	"github.com/rmera/corelevels/corelevel"
	v3 "github.com/rmera/corelevels/v3"
)

// Atom is a ready-to-serialize container for an atom and its position.
type Atom struct {
	Symbol string    `json:"symbol"`
	Coords []float64 `json:"coords"`
}

// Population is the serialized form of corelevel.Population.
type Population struct {
	Symbol string  `json:"symbol,omitempty"`
	Charge float64 `json:"charge"`
	Spin   float64 `json:"spin"`
}

// Job is the input for a core-level analysis: the geometry of the system, the
// energies of the core orbitals assigned to each atom by the QM program and, optionally,
// the results of a population analysis. Atom indexes are zero-based.
type Job struct {
	Title       string             `json:"title,omitempty"`
	Atoms       []Atom             `json:"atoms"`
	CoreLevels  map[int][]float64  `json:"corelevels"`
	Populations map[int]Population `json:"populations,omitempty"`
	Meta        map[string]string  `json:"meta,omitempty"`
}

// Decode reads a JSON job from r.
func Decode(r io.Reader) (*Job, error) {
	ret := new(Job)
	dec := json.NewDecoder(r)
	if err := dec.Decode(ret); err != nil {
		return nil, fmt.Errorf("chemjson.Decode: %w", err)
	}
	return ret, nil
}

// Encode writes J to w as indented JSON.
func (J *Job) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(J); err != nil {
		return fmt.Errorf("chemjson.Encode: %w", err)
	}
	return nil
}

// zstd.Decoder's Close doesn't return an error, so it is not an io.ReadCloser.
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// decompressor returns a function that wraps a reader for the compression
// format given by the extension of name. Names ending in .zst are zstd-compressed,
// names ending in .gz are gzip-compressed and anything else is plain JSON.
func decompressor(name string) func(io.Reader) (io.ReadCloser, error) {
	n := strings.ToLower(name)
	switch {
	case strings.HasSuffix(n, ".zst"):
		return func(r io.Reader) (io.ReadCloser, error) {
			d, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return zstdReadCloser{d}, nil
		}
	case strings.HasSuffix(n, ".gz"):
		return func(r io.Reader) (io.ReadCloser, error) { return gzip.NewReader(r) }
	default:
		return func(r io.Reader) (io.ReadCloser, error) { return io.NopCloser(r), nil }
	}
}

func compressor(name string) func(io.Writer) (io.WriteCloser, error) {
	n := strings.ToLower(name)
	switch {
	case strings.HasSuffix(n, ".zst"):
		return func(w io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		}
	case strings.HasSuffix(n, ".gz"):
		return func(w io.Writer) (io.WriteCloser, error) { return gzip.NewWriter(w), nil }
	default:
		return func(w io.Writer) (io.WriteCloser, error) { return nopWriteCloser{w}, nil }
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Open reads the job in the file name. If the name ends in .zst or .gz, the file is
// decompressed with zstd or gzip, respectively.
func Open(name string) (*Job, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("chemjson.Open: %w", err)
	}
	defer f.Close()
	r, err := decompressor(name)(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("chemjson.Open: can't decompress %s: %w", name, err)
	}
	defer r.Close()
	return Decode(r)
}

// Save writes J to the file name, compressing it if the name ends in .zst or .gz.
func (J *Job) Save(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("chemjson.Save: %w", err)
	}
	w, err := compressor(name)(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("chemjson.Save: %w", err)
	}
	if err := J.Encode(w); err != nil {
		w.Close()
		f.Close()
		return err
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("chemjson.Save: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("chemjson.Save: %w", err)
	}
	return nil
}

// Geometry builds the geometry of the job.
func (J *Job) Geometry() (*chem.Geometry, error) {
	const funcname = "Job.Geometry"
	if len(J.Atoms) == 0 {
		return nil, chem.NewError(chem.ErrMismatch, funcname, "the job has no atoms")
	}
	symbols := make([]string, len(J.Atoms))
	raw := make([]float64, 0, 3*len(J.Atoms))
	for i, a := range J.Atoms {
		if len(a.Coords) != 3 {
			return nil, chem.NewError(chem.ErrMismatch, funcname, "atom %d has %d coordinates", i, len(a.Coords))
		}
		symbols[i] = a.Symbol
		raw = append(raw, a.Coords...)
	}
	coords, err := v3.NewMatrix(raw)
	if err != nil {
		return nil, chem.ErrDecorate(err, funcname)
	}
	G, err := chem.NewGeometry(symbols, coords)
	if err != nil {
		return nil, chem.ErrDecorate(err, funcname)
	}
	return G, nil
}

// Table returns the core-level energies of the job. The slices are shared with J.
func (J *Job) Table() corelevel.Table {
	ret := make(corelevel.Table, len(J.CoreLevels))
	for k, v := range J.CoreLevels {
		ret[k] = v
	}
	return ret
}

// PopulationTable returns the population analysis of the job, or nil if the job has none.
// If an entry carries an element symbol, it must be that of the atom in mol.
func (J *Job) PopulationTable(mol chem.Connectivity) (corelevel.Populations, error) {
	if len(J.Populations) == 0 {
		return nil, nil
	}
	ret := make(corelevel.Populations, len(J.Populations))
	for k, v := range J.Populations {
		ret[k] = corelevel.Population{Symbol: chem.NormalizeSymbol(v.Symbol), Charge: v.Charge, Spin: v.Spin}
	}
	if err := ret.Check(mol.Len()); err != nil {
		return nil, chem.ErrDecorate(err, "Job.PopulationTable")
	}
	for k, v := range ret {
		if v.Symbol != "" && v.Symbol != mol.Symbol(k) {
			return nil, chem.NewError(chem.ErrMismatch, "Job.PopulationTable", "population entry %d is %s, atom is %s", k, v.Symbol, mol.Symbol(k))
		}
	}
	return ret, nil
}

// Load builds everything needed for an analysis from the job.
func (J *Job) Load() (*chem.Geometry, corelevel.Table, corelevel.Populations, error) {
	G, err := J.Geometry()
	if err != nil {
		return nil, nil, nil, err
	}
	T := J.Table()
	if err := T.Check(G.Len()); err != nil {
		return nil, nil, nil, chem.ErrDecorate(err, "Job.Load")
	}
	P, err := J.PopulationTable(G)
	if err != nil {
		return nil, nil, nil, err
	}
	return G, T, P, nil
}

// Record is the serialized form of a corelevel.Record. Optional fields are
// present only if they were requested.
type Record struct {
	Atom    int       `json:"atom"`
	Element string    `json:"element"`
	Mean    float64   `json:"mean"`
	StdDev  float64   `json:"std"`
	Spin    *float64  `json:"spin,omitempty"`
	Charge  *float64  `json:"charge,omitempty"`
	CN      *int      `json:"cn,omitempty"`
	Color   []float64 `json:"color,omitempty"`
}

// Info is the result of an analysis, to be passed back to the calling program.
type Info struct {
	Title   string   `json:"title,omitempty"`
	Header  []string `json:"header"`
	Records []Record `json:"records"`
}

// NewInfo builds the serializable result for records. colors can be nil, and
// otherwise must have one element per record.
func NewInfo(title string, columns []corelevel.Column, records []corelevel.Record, colors [][3]float64) (*Info, error) {
	if colors != nil && len(colors) != len(records) {
		return nil, fmt.Errorf("chemjson.NewInfo: %w: %d colors for %d records", chem.ErrMismatch, len(colors), len(records))
	}
	ret := &Info{Title: title, Header: corelevel.Header(columns), Records: make([]Record, 0, len(records))}
	for i, r := range records {
		jr := Record{Atom: r.Index, Element: r.Symbol, Mean: r.Mean, StdDev: r.StdDev}
		if v, ok := r.Value(corelevel.Spin); ok {
			jr.Spin = &v
		}
		if v, ok := r.Value(corelevel.Charge); ok {
			jr.Charge = &v
		}
		if v, ok := r.Value(corelevel.Coordination); ok {
			cn := int(v)
			jr.CN = &cn
		}
		if colors != nil {
			jr.Color = colors[i][:]
		}
		ret.Records = append(ret.Records, jr)
	}
	return ret, nil
}

// Send marshals the info and writes it to out.
func (J *Info) Send(out io.Writer) error {
	enc := json.NewEncoder(out)
	if err := enc.Encode(J); err != nil {
		return fmt.Errorf("chemjson.Info.Send: %w", err)
	}
	return nil
}
