// Command dreamcodec is the command-line front end for the conversion
// engine: queueing media files, inspecting hardware and encoders,
// managing preferences, and running conversion batches.
package main
