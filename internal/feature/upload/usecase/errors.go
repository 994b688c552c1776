// Package usecase はuploadフィーチャーのビジネスロジック（求人票ファイルのテキスト抽出）を実装します。
package usecase

import "errors"

var (
	// ErrUnsupportedType はテキストを取り出せないファイル形式に対して返されます。
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrPDFNotSupported はPDFが送られた場合に返されます。
	ErrPDFNotSupported = errors.New("pdf parsing not supported")

	// ErrFileTooLarge はMaxFileSizeを超えるファイルに対して返されます。
	ErrFileTooLarge = errors.New("file too large")

	// ErrNoText はOCRで文字が検出されなかった場合に返されます。
	ErrNoText = errors.New("no text found in image")
)
