// Package thumbnail fetches video thumbnails and turns them into
// display-ready bitmaps: aspect-fit into a box, cropped to fill and masked
// with rounded corners.
package thumbnail
