package s3

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/iam"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/evalbench/evalbench/storage/fs"
	"github.com/evalbench/evalbench/types"
)

// Type should match the package name
const Type = "s3"

// Storage is a way to store benchmark reports in an S3 bucket.
type Storage struct {
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	Region          string `json:"region"`
	Bucket          string `json:"bucket"`

	// Report files older than ReportExpiry will be
	// deleted on calls to Maintain(). If this is
	// the zero value, no old report files will be
	// deleted.
	ReportExpiry time.Duration `json:"report_expiry,omitempty"`
}

// New creates a new Storage instance based on json config
func New(config json.RawMessage) (Storage, error) {
	var storage Storage
	err := json.Unmarshal(config, &storage)
	return storage, err
}

// Type returns the storage driver package name
func (Storage) Type() string {
	return Type
}

// Store stores the report on S3 according to the configuration in s.
func (s Storage) Store(report types.Report) error {
	jsonBytes, err := json.Marshal(report)
	if err != nil {
		return err
	}
	svc := newS3(session.New(), &aws.Config{
		Credentials: credentials.NewStaticCredentials(s.AccessKeyID, s.SecretAccessKey, ""),
		Region:      &s.Region,
	})
	params := &s3.PutObjectInput{
		Bucket: &s.Bucket,
		Key:    fs.GenerateFilename(),
		Body:   bytes.NewReader(jsonBytes),
	}
	_, err = svc.PutObject(params)
	return err
}

// Maintain deletes report files that are older than s.ReportExpiry.
func (s Storage) Maintain() error {
	if s.ReportExpiry == 0 {
		return nil
	}

	svc := newS3(session.New(), &aws.Config{
		Credentials: credentials.NewStaticCredentials(s.AccessKeyID, s.SecretAccessKey, ""),
		Region:      &s.Region,
	})

	var marker *string
	for {
		listParams := &s3.ListObjectsInput{
			Bucket: &s.Bucket,
			Marker: marker,
		}
		listResp, err := svc.ListObjects(listParams)
		if err != nil {
			return err
		}

		var objsToDelete []*s3.ObjectIdentifier
		for _, o := range listResp.Contents {
			if time.Since(*o.LastModified) > s.ReportExpiry {
				objsToDelete = append(objsToDelete, &s3.ObjectIdentifier{Key: o.Key})
			}
		}

		if len(objsToDelete) == 0 {
			break
		}

		delParams := &s3.DeleteObjectsInput{
			Bucket: &s.Bucket,
			Delete: &s3.Delete{
				Objects: objsToDelete,
				Quiet:   aws.Bool(true),
			},
		}

		_, err = svc.DeleteObjects(delParams)
		if err != nil {
			return err
		}

		if !*listResp.IsTruncated {
			break
		}

		marker = listResp.Contents[len(listResp.Contents)-1].Key
	}

	return nil
}

// Provision creates a read-only IAM user for a results dashboard
// and makes sure the configured bucket exists. The returned info
// grants read access to the report files only.
func (s Storage) Provision() (types.ProvisionInfo, error) {
	var info types.ProvisionInfo

	sess := session.New(&aws.Config{
		Credentials: credentials.NewStaticCredentials(s.AccessKeyID, s.SecretAccessKey, ""),
		Region:      &s.Region,
	})
	iamSvc := newIAM(sess)
	s3Svc := newS3(sess)

	// Create a user dedicated to reading report files.
	userName := aws.String(provisionUserName)
	createUser, err := iamSvc.CreateUser(&iam.CreateUserInput{UserName: userName})
	if err != nil {
		return info, err
	}
	info.UserID = *createUser.User.UserId
	info.Username = *createUser.User.UserName

	policy := fmt.Sprintf(readOnlyPolicy, s.Bucket, s.Bucket)
	_, err = iamSvc.PutUserPolicy(&iam.PutUserPolicyInput{
		UserName:       userName,
		PolicyName:     aws.String(provisionPolicyName),
		PolicyDocument: &policy,
	})
	if err != nil {
		return info, err
	}

	accessKey, err := iamSvc.CreateAccessKey(&iam.CreateAccessKeyInput{UserName: userName})
	if err != nil {
		return info, err
	}
	info.PublicAccessKeyID = *accessKey.AccessKey.AccessKeyId
	info.PublicAccessKey = *accessKey.AccessKey.SecretAccessKey

	// Make sure the bucket exists; creating an existing bucket
	// owned by us is not an error.
	_, err = s3Svc.CreateBucket(&s3.CreateBucketInput{Bucket: &s.Bucket})
	if err != nil && !isBucketExistsErr(err) {
		return info, err
	}

	return info, nil
}

const (
	provisionUserName   = "evalbench-reports-public"
	provisionPolicyName = "evalbench-reports-read-only"
)

// readOnlyPolicy grants list+get on the report bucket only.
const readOnlyPolicy = `{
	"Version": "2012-10-17",
	"Statement": [
		{
			"Effect": "Allow",
			"Action": ["s3:ListBucket"],
			"Resource": "arn:aws:s3:::%s"
		},
		{
			"Effect": "Allow",
			"Action": ["s3:GetObject"],
			"Resource": "arn:aws:s3:::%s/*"
		}
	]
}`

func isBucketExistsErr(err error) bool {
	if err == nil {
		return false
	}
	for _, code := range []string{s3.ErrCodeBucketAlreadyOwnedByYou, s3.ErrCodeBucketAlreadyExists} {
		if awsErrCode(err) == code {
			return true
		}
	}
	return false
}

func awsErrCode(err error) string {
	type coder interface {
		Code() string
	}
	if c, ok := err.(coder); ok {
		return c.Code()
	}
	return ""
}

// newS3 calls s3.New(), but may be replaced for mocking in tests.
var newS3 = func(p client.ConfigProvider, cfgs ...*aws.Config) s3svc {
	return s3.New(p, cfgs...)
}

// newIAM calls iam.New(), but may be replaced for mocking in tests.
var newIAM = func(p client.ConfigProvider, cfgs ...*aws.Config) iamsvc {
	return iam.New(p, cfgs...)
}

// s3svc is used for mocking the s3.S3 type.
type s3svc interface {
	PutObject(*s3.PutObjectInput) (*s3.PutObjectOutput, error)
	ListObjects(*s3.ListObjectsInput) (*s3.ListObjectsOutput, error)
	DeleteObjects(*s3.DeleteObjectsInput) (*s3.DeleteObjectsOutput, error)
	CreateBucket(*s3.CreateBucketInput) (*s3.CreateBucketOutput, error)
}

// iamsvc is used for mocking the iam.IAM type.
type iamsvc interface {
	CreateUser(*iam.CreateUserInput) (*iam.CreateUserOutput, error)
	PutUserPolicy(*iam.PutUserPolicyInput) (*iam.PutUserPolicyOutput, error)
	CreateAccessKey(*iam.CreateAccessKeyInput) (*iam.CreateAccessKeyOutput, error)
}
