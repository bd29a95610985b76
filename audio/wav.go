package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// WAVInfo describes a WAV file header.
type WAVInfo struct {
	// SampleRate is the file's own sample rate in Hz.
	SampleRate int
	// Channels is the number of interleaved channels.
	Channels int
	// BitsPerSample is the sample width.
	BitsPerSample int
	// Frames is the number of sample frames in the data chunk.
	Frames int
}

// Duration returns the audio duration in seconds.
func (i WAVInfo) Duration() float64 {
	if i.SampleRate <= 0 {
		return 0
	}
	return float64(i.Frames) / float64(i.SampleRate)
}

// ReadWAVInfo reads the RIFF/WAVE header of the file at path without
// decoding the audio data.
func ReadWAVInfo(path string) (WAVInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return WAVInfo{}, err
	}
	defer f.Close()
	return readWAVHeader(f)
}

func readWAVHeader(r io.ReadSeeker) (WAVInfo, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return WAVInfo{}, fmt.Errorf("reading RIFF header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return WAVInfo{}, fmt.Errorf("not a RIFF/WAVE file")
	}

	var info WAVInfo
	var haveFmt, haveData bool

	// Walk chunks until both fmt and data have been seen.
	for {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return WAVInfo{}, fmt.Errorf("reading chunk header: %w", err)
		}
		chunkID := string(hdr[0:4])
		chunkSize := int64(binary.LittleEndian.Uint32(hdr[4:8]))

		switch chunkID {
		case "fmt ":
			var fmtChunk [16]byte
			if _, err := io.ReadFull(r, fmtChunk[:]); err != nil {
				return WAVInfo{}, fmt.Errorf("reading fmt chunk: %w", err)
			}
			info.Channels = int(binary.LittleEndian.Uint16(fmtChunk[2:4]))
			info.SampleRate = int(binary.LittleEndian.Uint32(fmtChunk[4:8]))
			info.BitsPerSample = int(binary.LittleEndian.Uint16(fmtChunk[14:16]))
			haveFmt = true
			if chunkSize > 16 {
				if _, err := r.Seek(chunkSize-16, io.SeekCurrent); err != nil {
					return WAVInfo{}, err
				}
			}
		case "data":
			if !haveFmt {
				return WAVInfo{}, fmt.Errorf("data chunk before fmt chunk")
			}
			blockAlign := info.Channels * info.BitsPerSample / 8
			if blockAlign <= 0 {
				return WAVInfo{}, fmt.Errorf("invalid fmt chunk: channels=%d bits=%d", info.Channels, info.BitsPerSample)
			}
			info.Frames = int(chunkSize) / blockAlign
			haveData = true
			if _, err := r.Seek(chunkSize, io.SeekCurrent); err != nil {
				return WAVInfo{}, err
			}
		default:
			// Chunks are word-aligned; odd sizes carry a pad byte.
			skip := chunkSize
			if chunkSize%2 == 1 {
				skip++
			}
			if _, err := r.Seek(skip, io.SeekCurrent); err != nil {
				return WAVInfo{}, err
			}
		}

		if haveFmt && haveData {
			break
		}
	}

	if !haveFmt {
		return WAVInfo{}, fmt.Errorf("missing fmt chunk")
	}
	if !haveData {
		return WAVInfo{}, fmt.Errorf("missing data chunk")
	}
	return info, nil
}
