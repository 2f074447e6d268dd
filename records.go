package recordmap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"

	"golang.org/x/sync/errgroup"
)

// RowReader reads records, *csv.Reader satisfies it
type RowReader interface {
	Read() ([]string, error)
}

// RowWriter writes records, *csv.Writer satisfies it
type RowWriter interface {
	Write(record []string) error
}

type flusher interface {
	Flush()
	Error() error
}

// ReadAll reads all records from reader, the first record is used as header unless disabled with WithHeader(false)
func ReadAll[T any](ctx context.Context, reader RowReader, classMap *ClassMap) ([]T, error) {
	if err := checkType[T](classMap); err != nil {
		return nil, err
	}
	var header []string
	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record %d: %w", len(records)+1, err)
		}
		if classMap.hasHeader && header == nil {
			header = append([]string{}, record...)
			continue
		}
		records = append(records, record)
	}
	if classMap.hasHeader && header == nil {
		return []T{}, nil
	}
	decoder, err := NewDecoder(classMap, header)
	if err != nil {
		return nil, err
	}
	return DecodeRecords[T](ctx, decoder, records)
}

// DecodeRecords decodes records in parallel preserving their order
func DecodeRecords[T any](ctx context.Context, decoder *Decoder, records [][]string) ([]T, error) {
	if err := checkType[T](decoder.classMap); err != nil {
		return nil, err
	}
	result := make([]T, len(records))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(decoder.classMap.concurrency)
	for i := range records {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			if err := decoder.Decode(records[i], &result[i]); err != nil {
				return fmt.Errorf("record %d: %w", i+1, err)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WriteAll writes header (unless disabled) and records, writers with Flush are flushed
func WriteAll[T any](writer RowWriter, classMap *ClassMap, records []T) error {
	if err := checkType[T](classMap); err != nil {
		return err
	}
	encoder := NewEncoder(classMap)
	if classMap.hasHeader {
		if err := writer.Write(encoder.Header()); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	for i := range records {
		record, err := encoder.Encode(&records[i])
		if err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		if err = writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i+1, err)
		}
	}
	if f, ok := writer.(flusher); ok {
		f.Flush()
		return f.Error()
	}
	return nil
}

func checkType[T any](classMap *ClassMap) error {
	if t := reflect.TypeOf((*T)(nil)).Elem(); t != classMap.rType {
		return fmt.Errorf("%w: class map %v, but had %v", ErrTypeMismatch, classMap.rType, t)
	}
	return nil
}
