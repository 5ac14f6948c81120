package util

import (
	"bytes"
	"encoding/binary"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"os"
	"reflect"
	"strconv"
)

//*******************************************
// binary buffers
//*******************************************

type BufferReader struct {
	reader *bytes.Reader
}

func NewBufferReader(data []byte) BufferReader {
	return BufferReader{
		reader: bytes.NewReader(data),
	}
}

func Read[T any](reader BufferReader) T {
	var value T
	binary.Read(reader.reader, binary.LittleEndian, &value)
	return value
}

func ReadArray[T any](reader BufferReader) Array[T] {
	var size int32
	binary.Read(reader.reader, binary.LittleEndian, &size)
	value := NewArray[T](int(size))
	binary.Read(reader.reader, binary.LittleEndian, &value)
	return value
}

type BufferWriter struct {
	buffer *bytes.Buffer
}

func NewBufferWriter() BufferWriter {
	return BufferWriter{
		buffer: &bytes.Buffer{},
	}
}

func (self BufferWriter) Bytes() []byte {
	return self.buffer.Bytes()
}

func Write[T any](writer BufferWriter, value T) {
	binary.Write(writer.buffer, binary.LittleEndian, value)
}

func WriteArray[T any](writer BufferWriter, value Array[T]) {
	binary.Write(writer.buffer, binary.LittleEndian, int32(value.Length()))
	binary.Write(writer.buffer, binary.LittleEndian, value)
}

//*******************************************
// file io
//*******************************************

func WriteBytesToFile(writer BufferWriter, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(writer.Bytes())
	return err
}

func ReadBytesFromFile(file string) (BufferReader, error) {
	_, err := os.Stat(file)
	if errors.Is(err, os.ErrNotExist) {
		return BufferReader{}, errors.New("file not found: " + file)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return BufferReader{}, err
	}
	return NewBufferReader(data), nil
}

func WriteJSONToFile[T any](value T, file string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0644)
}

func ReadJSONFromFile[T any](file string) (T, error) {
	var value T
	data, err := os.ReadFile(file)
	if err != nil {
		return value, err
	}
	err = json.Unmarshal(data, &value)
	return value, err
}

//*******************************************
// csv io
//*******************************************

// Iterates rows of a csv file decoding every row into T using "csv" field tags.
//
// Malformed rows are skipped.
func ReadCSVFromFile[T any](filename string, delimiter rune) func(yield func(T) bool) {
	return func(yield func(T) bool) {
		file, err := os.Open(filename)
		if err != nil {
			panic(err)
		}
		defer file.Close()

		reader := csv.NewReader(file)
		reader.Comma = delimiter
		header, err := reader.Read()
		if err != nil {
			panic(err)
		}
		columns := NewDict[string, int](10)
		for i, name := range header {
			columns[name] = i
		}

		var val T
		typ := reflect.TypeOf(val)
		fields := NewList[Triple[int, int, reflect.Kind]](typ.NumField())
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			tag := field.Tag.Get("csv")
			if tag == "" || !columns.ContainsKey(tag) {
				continue
			}
			col := columns[tag]
			switch field.Type.Kind() {
			case reflect.Bool:
				fields.Add(MakeTriple(i, col, reflect.Bool))
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				fields.Add(MakeTriple(i, col, reflect.Int))
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				fields.Add(MakeTriple(i, col, reflect.Uint))
			case reflect.Float32, reflect.Float64:
				fields.Add(MakeTriple(i, col, reflect.Float64))
			case reflect.String:
				fields.Add(MakeTriple(i, col, reflect.String))
			}
		}

		for {
			record, err := reader.Read()
			if err == io.EOF {
				break
			} else if err != nil {
				continue
			}
			t := reflect.New(typ).Elem()
			for _, field := range fields {
				index := field.A
				col := field.B
				kind := field.C
				value := record[col]
				if value == "" {
					continue
				}
				f := t.Field(index)
				switch kind {
				case reflect.Bool:
					num, _ := strconv.ParseBool(value)
					f.SetBool(num)
				case reflect.Int:
					num, _ := strconv.ParseInt(value, 10, 64)
					f.SetInt(num)
				case reflect.Uint:
					num, _ := strconv.ParseUint(value, 10, 64)
					f.SetUint(num)
				case reflect.Float64:
					num, _ := strconv.ParseFloat(value, 64)
					f.SetFloat(num)
				case reflect.String:
					f.SetString(value)
				}
			}
			if !yield(t.Interface().(T)) {
				break
			}
		}
	}
}
