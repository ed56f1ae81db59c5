// file: internals/helpers/google/drive_service.go
package google

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"materiku_backend/internals/configs"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Subfolder standar tiap folder materi — satu slot per jenis aset hasil pipeline.
var materialSubfolders = []string{"source", "video", "audio", "flashcards", "reports", "forms"}

type DriveFileInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MimeType    string `json:"mime_type,omitempty"`
	ViewURL     string `json:"view_url"`
	DownloadURL string `json:"download_url,omitempty"`
	Size        int64  `json:"size,omitempty"`
	CreatedTime string `json:"created_time,omitempty"`
}

// DriveService: folder + file materi di Google Drive, selalu public-read
// karena link-nya dibagikan ke siswa lewat katalog.
type DriveService struct {
	svc          *drive.Service
	rootFolderID string
}

func NewDriveService(ctx context.Context, cfg configs.DriveConfig) (*DriveService, error) {
	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(drive.DriveScope),
	)
	if err != nil {
		return nil, fmt.Errorf("drive: init service: %w", err)
	}
	return &DriveService{svc: svc, rootFolderID: cfg.RootFolderID}, nil
}

// CreateMaterialFolder membuat folder "MTRxxx_slug" + subfolder standar,
// lalu set public-read. Mengembalikan folder ID dan ID subfolder per nama.
func (d *DriveService) CreateMaterialFolder(ctx context.Context, materialID, slug string) (string, map[string]string, error) {
	folder, err := d.svc.Files.Create(&drive.File{
		Name:     fmt.Sprintf("%s_%s", materialID, slug),
		Parents:  []string{d.rootFolderID},
		MimeType: folderMimeType,
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", nil, fmt.Errorf("drive: create folder materi: %w", err)
	}

	subIDs := make(map[string]string, len(materialSubfolders))
	for _, name := range materialSubfolders {
		sub, err := d.svc.Files.Create(&drive.File{
			Name:     name,
			Parents:  []string{folder.Id},
			MimeType: folderMimeType,
		}).Fields("id").Context(ctx).Do()
		if err != nil {
			return "", nil, fmt.Errorf("drive: create subfolder %s: %w", name, err)
		}
		subIDs[name] = sub.Id
	}

	if err := d.setPublicPermission(ctx, folder.Id); err != nil {
		return "", nil, err
	}
	return folder.Id, subIDs, nil
}

func (d *DriveService) setPublicPermission(ctx context.Context, fileID string) error {
	_, err := d.svc.Permissions.Create(fileID, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("drive: set permission %s: %w", fileID, err)
	}
	return nil
}

// UploadFile mengunggah file multipart (file sumber dari guru) ke folder tujuan.
func (d *DriveService) UploadFile(ctx context.Context, fh *multipart.FileHeader, folderID, fileName string) (*DriveFileInfo, error) {
	if fileName == "" {
		fileName = fh.Filename
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("drive: buka file upload: %w", err)
	}
	defer src.Close()

	return d.upload(ctx, src, folderID, fileName, fh.Header.Get("Content-Type"))
}

// UploadJSON menulis payload JSON sebagai file publik (hasil generate pipeline).
func (d *DriveService) UploadJSON(ctx context.Context, data []byte, folderID, fileName string) (*DriveFileInfo, error) {
	return d.upload(ctx, bytes.NewReader(data), folderID, fileName, "application/json")
}

// UploadHTML menulis konten HTML sebagai file publik (laporan SQ3R dsb).
func (d *DriveService) UploadHTML(ctx context.Context, html, folderID, fileName string) (*DriveFileInfo, error) {
	return d.upload(ctx, strings.NewReader(html), folderID, fileName, "text/html")
}

func (d *DriveService) upload(ctx context.Context, r io.Reader, folderID, fileName, contentType string) (*DriveFileInfo, error) {
	call := d.svc.Files.Create(&drive.File{
		Name:    fileName,
		Parents: []string{folderID},
	}).Fields("id,name,webViewLink,webContentLink").Context(ctx)

	if contentType != "" {
		call = call.Media(r, googleapi.ContentType(contentType))
	} else {
		call = call.Media(r)
	}

	f, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("drive: upload %s: %w", fileName, err)
	}

	if err := d.setPublicPermission(ctx, f.Id); err != nil {
		return nil, err
	}

	return &DriveFileInfo{
		ID:          f.Id,
		Name:        f.Name,
		ViewURL:     f.WebViewLink,
		DownloadURL: f.WebContentLink,
	}, nil
}

func (d *DriveService) GetFolderInfo(ctx context.Context, folderID string) (*DriveFileInfo, error) {
	f, err := d.svc.Files.Get(folderID).Fields("id,name,webViewLink").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("drive: get folder %s: %w", folderID, err)
	}
	return &DriveFileInfo{ID: f.Id, Name: f.Name, ViewURL: f.WebViewLink}, nil
}

func (d *DriveService) ListFilesInFolder(ctx context.Context, folderID string) ([]DriveFileInfo, error) {
	resp, err := d.svc.Files.List().
		Q(fmt.Sprintf("'%s' in parents and trashed=false", folderID)).
		Fields("files(id,name,mimeType,webViewLink,webContentLink,size,createdTime)").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("drive: list folder %s: %w", folderID, err)
	}

	files := make([]DriveFileInfo, 0, len(resp.Files))
	for _, f := range resp.Files {
		files = append(files, DriveFileInfo{
			ID:          f.Id,
			Name:        f.Name,
			MimeType:    f.MimeType,
			ViewURL:     f.WebViewLink,
			DownloadURL: f.WebContentLink,
			Size:        f.Size,
			CreatedTime: f.CreatedTime,
		})
	}
	return files, nil
}
