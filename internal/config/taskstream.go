package config

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
)

// TaskRecord is one row of the task stream CSV (spec section 6.2):
// TaskName, GenerationTime, TaskID, TaskSize, CyclesPerBit, TransBitRate,
// DDL, SrcName.
type TaskRecord struct {
	TaskName       string
	GenerationTime float64
	TaskID         int64
	TaskSize       int64
	CyclesPerBit   float64
	TransBitRate   float64
	DDL            float64
	SrcName        string
}

// LoadTaskStream reads a task stream CSV and returns its rows ordered by
// GenerationTime (spec: "ingested in GenerationTime order").
func LoadTaskStream(path string) ([]TaskRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening task stream: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading task stream header: %w", err)
	}
	if len(header) < 8 {
		return nil, fmt.Errorf("task stream: expected 8 columns, got %d", len(header))
	}

	var records []TaskRecord
	row := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading task stream row %d: %w", row, err)
		}
		tr, err := parseTaskRecord(rec, row)
		if err != nil {
			return nil, err
		}
		records = append(records, tr)
		row++
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].GenerationTime < records[j].GenerationTime
	})
	return records, nil
}

func parseTaskRecord(rec []string, row int) (TaskRecord, error) {
	if len(rec) < 8 {
		return TaskRecord{}, fmt.Errorf("task stream row %d: expected 8 columns, got %d", row, len(rec))
	}
	gen, err := strconv.ParseFloat(rec[1], 64)
	if err != nil {
		return TaskRecord{}, fmt.Errorf("task stream row %d: invalid GenerationTime: %w", row, err)
	}
	id, err := strconv.ParseInt(rec[2], 10, 64)
	if err != nil {
		return TaskRecord{}, fmt.Errorf("task stream row %d: invalid TaskID: %w", row, err)
	}
	size, err := strconv.ParseInt(rec[3], 10, 64)
	if err != nil {
		return TaskRecord{}, fmt.Errorf("task stream row %d: invalid TaskSize: %w", row, err)
	}
	cpb, err := strconv.ParseFloat(rec[4], 64)
	if err != nil {
		return TaskRecord{}, fmt.Errorf("task stream row %d: invalid CyclesPerBit: %w", row, err)
	}
	rate, err := strconv.ParseFloat(rec[5], 64)
	if err != nil {
		return TaskRecord{}, fmt.Errorf("task stream row %d: invalid TransBitRate: %w", row, err)
	}
	ddl, err := strconv.ParseFloat(rec[6], 64)
	if err != nil {
		return TaskRecord{}, fmt.Errorf("task stream row %d: invalid DDL: %w", row, err)
	}
	return TaskRecord{
		TaskName:       rec[0],
		GenerationTime: gen,
		TaskID:         id,
		TaskSize:       size,
		CyclesPerBit:   cpb,
		TransBitRate:   rate,
		DDL:            ddl,
		SrcName:        rec[7],
	}, nil
}
