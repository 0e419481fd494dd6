package internal

// Version is the lingopop release version.
const Version = "0.3.0"
