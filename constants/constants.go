package constants

import "os"

func GetOutDir() string {
	path := os.Getenv("JIANPU_OUT_DIR")
	if path != "" {
		return path
	}
	return "./out"
}

func GetListenAddr() string {
	addr := os.Getenv("JIANPU_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

func GetMetadataEndpoint() string {
	return os.Getenv("JIANPU_METADATA_ENDPOINT")
}

// empty table disables the title lookup
func GetMetadataTable() string {
	return os.Getenv("JIANPU_METADATA_TABLE")
}

// octave that gets no dots
const ReferenceOctave = 4

const MeasuresPerRow = 5
const BarsPerWindow = 5
const CellWidth = 8

const BarMarker = "|"
const MeasureTerminator = BarMarker + " "

// combining marks, they attach to the preceding digit
const DotAbove = "\u0307"
const DotBelow = "\u0323"
const LowLine = "\u0332"

const Bullet = "\u2022"

const StylesheetHref = "./styles.css"
const StylesheetName = "styles.css"

// MIDI key that starts the top hand when a single track has to be split
const DefaultSplitPitch = 60
