package wavio

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
)

// WAV container constants.
const (
	wavHeaderSize      = 44
	wavRiffHeaderSize  = 36
	wavPCMSubchunkSize = 16
	wavFileSizeOffset  = 4
	wavDataSizeOffset  = 40

	bitsPerByte = 8
	uint32Size  = 4

	writerBufferSize = 256 * 1024
)

// pcmWriter streams PCM data with a single buffered writer, patching
// the RIFF and data chunk sizes into the header on Close.
type pcmWriter struct {
	w          *bufio.Writer
	f          *os.File
	sampleRate int
	bitDepth   int
	channels   int
	dataSize   uint32
}

func newPCMWriter(f *os.File, sampleRate, bitDepth, channels int) (*pcmWriter, error) {
	w := &pcmWriter{
		w:          bufio.NewWriterSize(f, writerBufferSize),
		f:          f,
		sampleRate: sampleRate,
		bitDepth:   bitDepth,
		channels:   channels,
	}
	if err := w.writeHeader(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *pcmWriter) writeHeader() error {
	bytesPerSample := w.bitDepth / bitsPerByte
	byteRate := w.sampleRate * w.channels * bytesPerSample
	blockAlign := w.channels * bytesPerSample

	header := make([]byte, wavHeaderSize)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 0) // patched on Close
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], wavPCMSubchunkSize)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(w.channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(w.sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(w.bitDepth))

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], 0) // patched on Close

	_, err := w.w.Write(header)
	return err
}

// WriteSamples encodes interleaved 16-bit samples.
func (w *pcmWriter) WriteSamples(samples []int) error {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(s)))
	}
	written, err := w.w.Write(buf)
	w.dataSize += uint32(written)
	return err
}

// Close flushes buffered data and fills in the header size fields.
func (w *pcmWriter) Close() error {
	if err := w.w.Flush(); err != nil {
		return err
	}

	sizeBytes := make([]byte, uint32Size)
	if _, err := w.f.Seek(wavFileSizeOffset, io.SeekStart); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(sizeBytes, wavRiffHeaderSize+w.dataSize)
	if _, err := w.f.Write(sizeBytes); err != nil {
		return err
	}

	if _, err := w.f.Seek(wavDataSizeOffset, io.SeekStart); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(sizeBytes, w.dataSize)
	_, err := w.f.Write(sizeBytes)
	return err
}
